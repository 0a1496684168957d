package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugStripPattern  = regexp.MustCompile(`[^\w ]+`)
	slugSpacesPattern = regexp.MustCompile(` +`)
)

// Slugify переводит строку в URL-безопасный вид: нижний регистр,
// спецсимволы убираются, пробелы заменяются дефисами.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugSpacesPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// MakeSlug добавляет к slug миллисекундную метку времени. Два поста с одним
// заголовком получают разные slug, а существующие ссылки не ломаются, потому
// что slug пересчитывается только при смене заголовка.
func MakeSlug(title string, t time.Time) string {
	return fmt.Sprintf("%s-%d", Slugify(title), t.UnixMilli())
}
