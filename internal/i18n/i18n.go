// Package i18n provides translated console messages for the CLI.
package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var bundle *i18n.Bundle

// Init loads the embedded message files. Call once at startup.
func Init() error {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, name := range []string{"locales/en.toml", "locales/zh-CN.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// NewLocalizer creates a localizer for lang, falling back to English.
func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, ParseLocale(lang), "en")
}

// ParseLocale normalizes a language string to a supported locale.
func ParseLocale(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "zh") {
		return "zh-CN"
	}
	return "en"
}

// T translates msgID, returning the key itself if it has no translation.
func T(localizer *i18n.Localizer, msgID string) string {
	return TWithData(localizer, msgID, nil)
}

// TWithData translates a message with template data.
func TWithData(localizer *i18n.Localizer, msgID string, data map[string]interface{}) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		return msgID
	}
	return msg
}

// TPlural translates a message selecting the plural form for count.
// Count is available to the template as {{.Count}}.
func TPlural(localizer *i18n.Localizer, msgID string, count int, data map[string]interface{}) string {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["Count"] = count
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
		PluralCount:  count,
	})
	if err != nil {
		return msgID
	}
	return msg
}

type contextKey string

// ContextKeyLocalizer is the key for the Localizer in context.Context.
const ContextKeyLocalizer contextKey = "i18n.localizer"

// WithLocalizer stores a Localizer in ctx.
func WithLocalizer(ctx context.Context, localizer *i18n.Localizer) context.Context {
	return context.WithValue(ctx, ContextKeyLocalizer, localizer)
}

// LocalizerFromContext returns the Localizer in ctx, or an English one.
func LocalizerFromContext(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(ContextKeyLocalizer).(*i18n.Localizer); ok {
		return localizer
	}
	return NewLocalizer("en")
}

// Ctx translates msgID with the localizer carried by ctx.
func Ctx(ctx context.Context, msgID string) string {
	return T(LocalizerFromContext(ctx), msgID)
}

// CtxWithData translates msgID with template data.
func CtxWithData(ctx context.Context, msgID string, data map[string]interface{}) string {
	return TWithData(LocalizerFromContext(ctx), msgID, data)
}

// CtxPlural translates msgID selecting the plural form for count.
func CtxPlural(ctx context.Context, msgID string, count int, data map[string]interface{}) string {
	return TPlural(LocalizerFromContext(ctx), msgID, count, data)
}

// Error is an error whose user-facing text is a translated message.
// Error() returns the message ID and cause, for logs.
type Error struct {
	MsgID string
	Data  map[string]interface{}
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.MsgID, e.Cause)
	}
	return e.MsgID
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Translate renders the error for the given localizer.
func (e *Error) Translate(localizer *i18n.Localizer) string {
	return TWithData(localizer, e.MsgID, e.Data)
}

// TranslateCtx renders the error with the localizer carried by ctx.
func (e *Error) TranslateCtx(ctx context.Context) string {
	return e.Translate(LocalizerFromContext(ctx))
}

// NewError creates a translatable error wrapping cause.
func NewError(msgID string, cause error) *Error {
	return &Error{MsgID: msgID, Cause: cause}
}

// WithData sets the translation data.
func (e *Error) WithData(data map[string]interface{}) *Error {
	e.Data = data
	return e
}

// AsError reports whether err wraps an *Error.
func AsError(err error) (*Error, bool) {
	var i18nErr *Error
	if errors.As(err, &i18nErr) {
		return i18nErr, true
	}
	return nil, false
}
