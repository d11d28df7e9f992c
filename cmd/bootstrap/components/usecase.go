package components

import (
	"staybook/internal/domain/pricing"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPricingCalculator,
	NewBookingConfig,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

func NewPricingCalculator(cfg config.Config) *pricing.Calculator {
	return pricing.NewCalculator(cfg.Booking.Currency)
}

func NewBookingConfig(cfg config.Config) config.BookingConfig {
	return cfg.Booking
}
