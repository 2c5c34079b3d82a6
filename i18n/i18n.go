package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

const Hebrew = "he"

// rtlLocales lists the locales whose script is written right to left.
var rtlLocales = map[string]bool{"he": true, "ar": true}

func IsRTL(locale string) bool {
	return rtlLocales[locale]
}

//go:embed messages/*.json
var embedded embed.FS

// Messages is a flat key to text mapping, keys are dot separated paths of the source tree.
type Messages map[string]string

// Flatten turns a nested message tree into Messages. Non-string leaves are skipped.
func Flatten(tree map[string]interface{}) Messages {
	out := Messages{}
	flattenInto(out, "", tree)
	return out
}

func flattenInto(out Messages, prefix string, tree map[string]interface{}) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]interface{}:
			flattenInto(out, key, val)
		}
	}
}

type Catalog struct {
	messages map[string]Messages
}

// Load reads every <locale>.json file found in dir of fsys.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	c := &Catalog{messages: map[string]Messages{}}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tree := map[string]interface{}{}
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse messages %s: %w", entry.Name(), err)
		}
		c.messages[strings.TrimSuffix(entry.Name(), ".json")] = Flatten(tree)
	}
	if _, ok := c.messages[Hebrew]; !ok {
		return nil, fmt.Errorf("messages for '%s' are missing", Hebrew)
	}
	return c, nil
}

// Default is the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(embedded, "messages")
}

func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.messages))
	for l := range c.messages {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

func (c *Catalog) Supports(locale string) bool {
	_, ok := c.messages[locale]
	return ok
}

// Translator returns the lookup for locale. Unknown locales resolve through Hebrew only.
func (c *Catalog) Translator(locale string) Translator {
	return Translator{Locale: locale, local: c.messages[locale], hebrew: c.messages[Hebrew]}
}

type Translator struct {
	Locale string
	local  Messages
	hebrew Messages
}

// T looks key up in the locale, then in Hebrew, and finally returns the key itself.
func (t Translator) T(key string) string {
	if v, ok := t.local[key]; ok {
		return v
	}
	return t.He(key)
}

// He looks key up in Hebrew and returns the key itself when missing.
func (t Translator) He(key string) string {
	if v, ok := t.hebrew[key]; ok {
		return v
	}
	return key
}
