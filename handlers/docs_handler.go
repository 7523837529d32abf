package handlers

import (
	"fmt"
	"net/http"
	"os"
)

// DocsHandler serves the static pages app stores require and the minimum
// supported app version.
type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

func (h *DocsHandler) ServePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `
<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Política de Privacidade - Estrada Leve</title>
	<style>
		body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
		h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
		h2 { color: #34495e; margin-top: 30px; }
	</style>
</head>
<body>
	<h1>Política de Privacidade</h1>
	<p>O Estrada Leve coleta apenas os dados necessários para acompanhar sua
	jornada de saúde: peso, medidas, refeições e atividades registradas por
	você. Esses dados nunca são vendidos ou compartilhados com terceiros.</p>
	<h2>Dados coletados</h2>
	<ul>
		<li>Informações de conta (e-mail, apelido, foto de perfil)</li>
		<li>Medições de peso e cintura registradas por você</li>
		<li>Refeições, atividades e treinos registrados no aplicativo</li>
	</ul>
	<h2>Exclusão de dados</h2>
	<p>Você pode excluir sua conta e todos os dados associados a qualquer
	momento na tela de Perfil.</p>
</body>
</html>
`)
}

func (h *DocsHandler) GetAppMinVersion(w http.ResponseWriter, r *http.Request) {
	type MinVersion struct {
		MinAndroidVersion string `json:"min_android_version_code"`
		MinIOSVersion     string `json:"min_ios_version_code"`
		UpdateMessage     string `json:"update_message"`
	}

	minVers := &MinVersion{
		MinAndroidVersion: os.Getenv("ANDROID_MIN_VERSION"),
		MinIOSVersion:     os.Getenv("IOS_MIN_VERSION"),
		UpdateMessage:     "Uma atualização importante está disponível. Atualize o aplicativo para continuar.",
	}

	respondWithJSON(w, http.StatusOK, minVers)
}
