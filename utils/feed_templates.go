package utils

import "fmt"

// Automatic social-feed echo texts. These mirror what the app shows; the
// posts themselves are best-effort and never block the triggering action.

func MealEchoText(mealName string) string {
	return fmt.Sprintf("Acabei de bater um rangaço saudável: %s! 🥗🍛", mealName)
}

func WeightEchoText(weight float64) string {
	return fmt.Sprintf("Atualizei meu peso: %.1fkg na balança! ⚖️💪", weight)
}

func WorkoutEchoText() string {
	return "Acabei de validar meu treino! +200 pontos no Ranking! 🏋️‍♂️🏆"
}

func ActivityEchoText(title string) string {
	return fmt.Sprintf("Missão cumprida: %s! ✅🚛", title)
}

func ResourceEchoText(title string) string {
	return fmt.Sprintf("Conteúdo novo na área: %s! 📚", title)
}

func MedalToastText(medalName string) string {
	return fmt.Sprintf("🏆 Medalha Ganhada: %s!", medalName)
}
