package handlers

import (
	"time"

	"github.com/booklyhq/bookly-api/internal/models"
	"github.com/booklyhq/bookly-api/internal/timezone"
)

func locationFromBusiness(biz *models.Business) *time.Location {
	if biz != nil {
		return timezone.Location(biz.Timezone)
	}
	return timezone.Location("")
}

func parseDateInBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(biz),
	)
}
