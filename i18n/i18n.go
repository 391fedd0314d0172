package i18n

import (
	"embed"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LangEnv forces the UI language, e.g. REACTIONTEST_LANG=pt.
const LangEnv = "REACTIONTEST_LANG"

//go:embed locales/*.yaml
var locales embed.FS

// Supported lists the catalog languages, English first as the fallback.
var Supported = []language.Tag{
	language.English,
	language.Portuguese,
	language.Spanish,
	language.Russian,
}

var (
	mu        sync.RWMutex
	lang      = "en"
	bundle    = mustBundle()
	localizer = goi18n.NewLocalizer(bundle, "en")
	matcher   = language.NewMatcher(Supported)
)

func mustBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		if _, err := b.LoadMessageFileFS(locales, "locales/"+e.Name()); err != nil {
			panic(err)
		}
	}
	return b
}

// Init picks the UI language. Priority: override (config or flag), then
// REACTIONTEST_LANG, then the system locale, then English.
func Init(override string, log *zap.Logger) {
	requested := strings.TrimSpace(override)
	if requested == "" {
		if forcedLang := strings.TrimSpace(os.Getenv(LangEnv)); forcedLang != "" {
			log.Info("Language forced by environment", zap.String("env", LangEnv), zap.String("lang", forcedLang))
			requested = forcedLang
		}
	}

	if requested == "" {
		userLocales, err := locale.GetLocales()
		switch {
		case err != nil:
			log.Warn("Could not get user locale, defaulting to english", zap.Error(err))
		case len(userLocales) == 0:
			log.Info("No user locale detected, defaulting to english")
		default:
			log.Debug("Detected user locales", zap.Strings("locales", userLocales))
			requested = strings.Join(userLocales, ",")
		}
	}

	SetLang(requested)
	log.Info("Language set", zap.String("lang", GetLang()))
}

// SetLang selects the closest supported language for a BCP 47 tag or a
// comma separated preference list. Unknown input falls back to English.
func SetLang(requested string) {
	tag := language.English
	if requested != "" {
		var prefs []language.Tag
		for _, s := range strings.Split(requested, ",") {
			// go-locale reports POSIX style names like pt_BR
			if t, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")); err == nil {
				prefs = append(prefs, t)
			}
		}
		if len(prefs) > 0 {
			_, idx, conf := matcher.Match(prefs...)
			if conf != language.No {
				tag = Supported[idx]
			}
		}
	}

	base, _ := tag.Base()
	mu.Lock()
	defer mu.Unlock()
	lang = base.String()
	localizer = goi18n.NewLocalizer(bundle, lang, "en")
}

// T returns the translated message for id, or id itself when unknown.
func T(id string) string {
	return Tf(id, nil)
}

// Tf translates id and fills its template with data.
func Tf(id string, data map[string]any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()

	msg, err := l.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// GetLang returns the active language code.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}
