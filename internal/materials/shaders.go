package materials

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(mat3(matNormal) * vertexNormal);
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS: Blinn-Phong from a single point lamp, no attenuation.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 lightPos;
uniform vec3 lightColor;
uniform vec3 viewPos;
uniform vec4 ambient;
uniform float useMaterial;
uniform float hasTexture;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec4 albedo = colDiffuse;
  if (hasTexture > 0.5) {
    albedo *= texture(texture0, fragTexCoord);
  } else if (useMaterial < 0.5) {
    finalColor = vec4(N * 0.5 + 0.5, 1.0);
    return;
  }
  vec3 L = normalize(lightPos - fragPosition);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 H = normalize(L + V);
  float specular = pow(max(dot(N, H), 0.0), 32.0) * 0.4 * (NdotL > 0.0 ? 1.0 : 0.0);
  vec3 rgb = ambient.rgb * albedo.rgb + albedo.rgb * NdotL * lightColor + specular * lightColor;
  finalColor = vec4(rgb, albedo.a);
}
`
	// envFS: mirror reflection with a Schlick rim. roughness picks a blurrier
	// mip of the cubemap.
	envFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform samplerCube environmentMap;
uniform vec4 colDiffuse;
uniform vec3 cameraPos;
uniform float fresnelStrength;
uniform float roughness;
uniform float maxLod;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 I = normalize(fragPosition - cameraPos);
  if (dot(N, I) > 0.0) {
    N = -N;
  }
  vec3 R = reflect(I, N);
  vec3 env = textureLod(environmentMap, R, roughness * maxLod).rgb;
  float cosTheta = clamp(dot(-I, N), 0.0, 1.0);
  float fresnel = fresnelStrength + (1.0 - fresnelStrength) * pow(1.0 - cosTheta, 5.0);
  vec3 base = colDiffuse.rgb * 0.15;
  finalColor = vec4(mix(base, env, fresnel), 1.0);
}
`
)
