package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const FallbackLocale = "en"

type Translations map[string]string

// Catalog holds one set of translations per locale directory.
type Catalog struct {
	mu      sync.RWMutex
	locales map[string]Translations
}

func NewCatalog() *Catalog {
	return &Catalog{locales: make(map[string]Translations)}
}

// Load reads <localePath>/<locale>/<file> for every locale directory. A
// locale without the file is skipped.
func (c *Catalog) Load(localePath, file string) error {
	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	loaded := make(map[string]Translations)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := filepath.Join(localePath, locale, file)

		data, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}

		trans, err := Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}
		loaded[locale] = trans
	}

	c.mu.Lock()
	for locale, trans := range loaded {
		c.locales[locale] = trans
	}
	c.mu.Unlock()
	return nil
}

// Add registers translations for a locale, replacing existing keys.
func (c *Catalog) Add(locale string, trans Translations) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.locales[locale]
	if !ok {
		existing = make(Translations)
		c.locales[locale] = existing
	}
	for k, v := range trans {
		existing[k] = v
	}
}

// Parse flattens nested YAML maps into dotted keys.
func Parse(data []byte) (Translations, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(Translations)
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out Translations) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Translate looks the key up in locale, then in the fallback locale, and
// returns the key itself when neither has it.
func (c *Catalog) Translate(locale, key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if trans, ok := c.locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != FallbackLocale {
		if trans, ok := c.locales[FallbackLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Render translates key and substitutes {name} placeholders from vars.
func (c *Catalog) Render(locale, key string, vars map[string]string) string {
	text := c.Translate(locale, key)
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
