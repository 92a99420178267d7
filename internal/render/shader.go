package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"shapefield/internal/palette"
)

// loadLitShader returns a shader that does simple directional light + ambient, plus a flat
// emissive term so shapes never fall to black on the unlit side.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform vec3 emissive;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(min(amb + diffuse + specular + emissive, vec3(1.0)), tint.a);
}
`
)

// defaultAmbient is a dim white fill.
var defaultAmbient = [4]float32{0.3, 0.3, 0.3, 1.0}

var defaultLightColor = [3]float32{1.0, 1.0, 1.0}

const defaultLightIntensity = float32(1.0)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(32.0)

// defaultSpecularStrength scales specular contribution (0–1). Lambert-like surfaces: keep it low.
const defaultSpecularStrength = float32(0.1)

// litShader caches uniform locations of the lit shader.
type litShader struct {
	shader       rl.Shader
	viewPos      int32
	lightDir     int32
	ambient      int32
	lightColor   int32
	intensity    int32
	specPower    int32
	specStrength int32
	emissive     int32
}

func newLitShader() *litShader {
	shader := loadLitShader()
	if !rl.IsShaderValid(shader) {
		return nil
	}
	return &litShader{
		shader:       shader,
		viewPos:      rl.GetShaderLocation(shader, "viewPos"),
		lightDir:     rl.GetShaderLocation(shader, "lightDir"),
		ambient:      rl.GetShaderLocation(shader, "ambient"),
		lightColor:   rl.GetShaderLocation(shader, "lightColor"),
		intensity:    rl.GetShaderLocation(shader, "lightIntensity"),
		specPower:    rl.GetShaderLocation(shader, "specularPower"),
		specStrength: rl.GetShaderLocation(shader, "specularStrength"),
		emissive:     rl.GetShaderLocation(shader, "emissive"),
	}
}

// setFrame sets the per-frame uniforms (cgo-safe: local arrays).
func (s *litShader) setFrame(viewPos, lightDir [3]float32) {
	amb := defaultAmbient
	lightColor := defaultLightColor
	if s.viewPos >= 0 {
		rl.SetShaderValueV(s.shader, s.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if s.lightDir >= 0 {
		rl.SetShaderValueV(s.shader, s.lightDir, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if s.ambient >= 0 {
		rl.SetShaderValueV(s.shader, s.ambient, amb[:], rl.ShaderUniformVec4, 1)
	}
	if s.lightColor >= 0 {
		rl.SetShaderValueV(s.shader, s.lightColor, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if s.intensity >= 0 {
		rl.SetShaderValue(s.shader, s.intensity, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if s.specPower >= 0 {
		rl.SetShaderValue(s.shader, s.specPower, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if s.specStrength >= 0 {
		rl.SetShaderValue(s.shader, s.specStrength, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

// setEmissive sets the self-illumination for the next draw.
func (s *litShader) setEmissive(c palette.RGB) {
	if s.emissive < 0 {
		return
	}
	e := [3]float32{c.R, c.G, c.B}
	rl.SetShaderValueV(s.shader, s.emissive, e[:], rl.ShaderUniformVec3, 1)
}

func (s *litShader) unload() {
	rl.UnloadShader(s.shader)
}
