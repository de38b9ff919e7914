package services

import (
	"fmt"
	"strings"

	googletranslatefree "github.com/bas24/googletranslatefree"
)

type Translator struct {
	sourceLang string
	targetLang string
	translate  func(text, source, target string) (string, error)
}

func NewTranslator(sourceLang, targetLang string) *Translator {
	return &Translator{
		sourceLang: sourceLang,
		targetLang: targetLang,
		translate:  googletranslatefree.Translate,
	}
}

func (t *Translator) Translate(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	translatedText, err := t.translate(text, t.sourceLang, t.targetLang)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}

	return translatedText, nil
}
