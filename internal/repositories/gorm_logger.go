package repositories

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// gormWriter routes GORM's slow-query and error output through zerolog.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msg(fmt.Sprintf(format, args...))
}
