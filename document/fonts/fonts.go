package fonts

import (
	"fmt"
	"io/fs"
	"strings"

	"bneibrit/document/layout"
)

const (
	BaseFile     = "NotoSans-Regular.ttf"
	BaseFamily   = "NotoSansBase"
	HebrewFamily = "NotoSansHebrew"
)

// FileByLocale maps a locale to the font file covering its script.
var FileByLocale = map[string]string{
	"he": "NotoSansHebrew-Regular.ttf",
	"ar": "NotoSansArabic-Regular.ttf",
	"am": "NotoSansEthiopic-Regular.ttf",
	"ru": BaseFile,
	"uk": BaseFile,
}

type Registrar interface {
	RegisterFont(family string, ttf []byte) error
}

type Loader struct {
	FS fs.FS
}

func (l Loader) register(r Registrar, file, family string) error {
	ttf, err := fs.ReadFile(l.FS, file)
	if err != nil {
		return fmt.Errorf("load font %s: %w", file, err)
	}
	if err := r.RegisterFont(family, ttf); err != nil {
		return fmt.Errorf("register font %s: %w", file, err)
	}
	return nil
}

// Load registers the base, Hebrew and locale fonts and returns their family names.
func (l Loader) Load(r Registrar, locale string) (layout.Fonts, error) {
	if err := l.register(r, BaseFile, BaseFamily); err != nil {
		return layout.Fonts{}, err
	}
	hebrewFile := FileByLocale["he"]
	if err := l.register(r, hebrewFile, HebrewFamily); err != nil {
		return layout.Fonts{}, err
	}

	fonts := layout.Fonts{Locale: HebrewFamily, Hebrew: HebrewFamily, Base: BaseFamily}
	if locale == "he" {
		return fonts, nil
	}

	file, ok := FileByLocale[locale]
	if !ok {
		file = BaseFile
	}
	switch file {
	case BaseFile:
		fonts.Locale = BaseFamily
	case hebrewFile:
	default:
		family := strings.Replace(strings.TrimSuffix(file, ".ttf"), "-", "", 1)
		if err := l.register(r, file, family); err != nil {
			return layout.Fonts{}, err
		}
		fonts.Locale = family
	}
	return fonts, nil
}
