package attribution

import (
	"time"

	"github.com/vfg2006/attribution-api/internal/domain"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n float64) time.Time {
	return baseTime.Add(time.Duration(n * float64(24*time.Hour)))
}

func touch(customerID, channel string, at time.Time) domain.Touchpoint {
	return domain.Touchpoint{
		CustomerID:      customerID,
		Timestamp:       at,
		Channel:         channel,
		InteractionType: domain.InteractionClick,
	}
}

func convert(customerID string, at time.Time, value float64) domain.Conversion {
	return domain.Conversion{CustomerID: customerID, Timestamp: at, ConversionValue: value}
}

func creditsByChannel(credits []domain.ChannelCredit) map[string]float64 {
	m := make(map[string]float64, len(credits))
	for _, c := range credits {
		m[c.Channel] = c.Value
	}
	return m
}

// mixedFixture tem clientes com vários touchpoints, um cliente convertendo antes
// de qualquer touchpoint e um cliente sem conversão.
func mixedFixture() ([]domain.Touchpoint, []domain.Conversion) {
	touchpoints := []domain.Touchpoint{
		touch("c1", "Email", day(1)),
		touch("c1", "Paid Search", day(3)),
		touch("c1", "Social Media", day(6)),
		touch("c1", "Email", day(8)),
		touch("c2", "Display", day(2)),
		touch("c2", "Email", day(3)),
		touch("c2", "Organic Search", day(4)),
		touch("c3", "Paid Search", day(5)),
		touch("c4", "Email", day(10)), // depois da conversão de c4
		touch("c5", "Social Media", day(1)),
		touch("c1", "Display", day(20)), // depois da conversão de c1
	}
	conversions := []domain.Conversion{
		convert("c1", day(9), 250),
		convert("c2", day(4), 120), // touchpoint no mesmo instante da conversão conta
		convert("c3", day(7), 80),
		convert("c4", day(2), 300),
	}
	return touchpoints, conversions
}
