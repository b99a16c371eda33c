package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pearlify/internal/analytics"
	repo "pearlify/internal/repository"

	"github.com/labstack/gommon/log"
)

// AnalyticsUsecase reads the whole store and hands it to the pure aggregator.
type AnalyticsUsecase struct {
	orders repo.OrderRepository
	clock  Clock
	loc    *time.Location
	logger *log.Logger
}

func NewAnalyticsUsecase(orders repo.OrderRepository, clock Clock, loc *time.Location, logger *log.Logger) *AnalyticsUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsUsecase{orders: orders, clock: clock, loc: loc, logger: logger}
}

// ParseWindow maps the dashboard's period selector.
func ParseWindow(v string) (analytics.Window, error) {
	w, ok := analytics.ParseWindow(v)
	if !ok {
		return "", wrapHTTPError(http.StatusBadRequest, "period must be all, today, week or month", ErrValidation)
	}
	return w, nil
}

func (u *AnalyticsUsecase) Compute(ctx context.Context, w analytics.Window) analytics.Report {
	r := analytics.Compute(u.orders.LoadAll(ctx), w, u.clock.Now(), analytics.Options{Location: u.loc})
	if len(r.UndatedOrders) > 0 {
		u.logger.Warnf("%s report: %d orders without a placed time left out: %s",
			w, len(r.UndatedOrders), strings.Join(r.UndatedOrders, ", "))
	}
	return r
}
