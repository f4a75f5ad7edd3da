package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/prakoso/storely/internal/common/constants"
)

var Tracer = otel.Tracer(constants.AppStorefrontService)
