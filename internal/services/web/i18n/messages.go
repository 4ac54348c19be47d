package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	en := language.AmericanEnglish
	message.SetString(en, "title.home", "Home")
	message.SetString(en, "title.about", "About")
	message.SetString(en, "title.not_found", "Page not found")
	message.SetString(en, "title.error", "Something went wrong")
	message.SetString(en, "about.body", "This page exists so the navigation bar has somewhere to go.")
	message.SetString(en, "error.not_found", "The page you requested does not exist.")
	message.SetString(en, "error.generic", "Please try again in a moment.")
	message.SetString(en, "echo.label", "Text")

	pt := language.BrazilianPortuguese
	message.SetString(pt, "title.home", "Início")
	message.SetString(pt, "title.about", "Sobre")
	message.SetString(pt, "title.not_found", "Página não encontrada")
	message.SetString(pt, "title.error", "Algo deu errado")
	message.SetString(pt, "about.body", "Esta página existe para que a barra de navegação tenha para onde ir.")
	message.SetString(pt, "error.not_found", "A página solicitada não existe.")
	message.SetString(pt, "error.generic", "Tente novamente em instantes.")
	message.SetString(pt, "echo.label", "Texto")
}
