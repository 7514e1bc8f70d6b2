package attribution

import "github.com/vfg2006/attribution-api/internal/domain"

// channelExposure guarda os clientes distintos expostos a cada canal
type channelExposure struct {
	channels  []string
	customers map[string]map[string]struct{}
}

func newChannelExposure(touchpoints []domain.Touchpoint) *channelExposure {
	exposure := &channelExposure{
		customers: make(map[string]map[string]struct{}),
	}

	for _, tp := range touchpoints {
		set, ok := exposure.customers[tp.Channel]
		if !ok {
			set = make(map[string]struct{})
			exposure.customers[tp.Channel] = set
			exposure.channels = append(exposure.channels, tp.Channel)
		}
		set[tp.CustomerID] = struct{}{}
	}

	return exposure
}

// split retorna quantos clientes do canal converteram e quantos não converteram
func (e *channelExposure) split(channel string, converters map[string]struct{}) (converting, nonConverting int) {
	for customerID := range e.customers[channel] {
		if _, ok := converters[customerID]; ok {
			converting++
		} else {
			nonConverting++
		}
	}
	return converting, nonConverting
}

func converterSet(conversions []domain.Conversion) map[string]struct{} {
	converters := make(map[string]struct{}, len(conversions))
	for _, conversion := range conversions {
		converters[conversion.CustomerID] = struct{}{}
	}
	return converters
}

func totalConversionValue(conversions []domain.Conversion) float64 {
	total := 0.0
	for _, conversion := range conversions {
		total += conversion.ConversionValue
	}
	return total
}
