package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/internal/domain"
)

func TestIncremental(t *testing.T) {
	exposed := []domain.Touchpoint{
		touch("c1", "Email", day(1)),
		touch("c2", "Email", day(1)),
		touch("c3", "Email", day(1)),
		touch("c4", "Email", day(1)),
	}
	control := domain.ControlGroup{Name: "holdout", CustomerIDs: []string{"k1", "k2", "k3", "k4"}}

	tests := []struct {
		name        string
		conversions []domain.Conversion
		control     domain.ControlGroup
		validate    func(t *testing.T, credits []domain.IncrementalCredit)
	}{
		{
			name: "Tratamento acima do controle gera lift positivo",
			conversions: []domain.Conversion{
				convert("c1", day(2), 100),
				convert("c2", day(2), 100),
				convert("c3", day(2), 100),
				convert("k1", day(2), 100),
			},
			control: control,
			validate: func(t *testing.T, credits []domain.IncrementalCredit) {
				require.Len(t, credits, 1)
				assert.InDelta(t, 0.5, credits[0].IncrementalLift, tolerance)
				assert.InDelta(t, 200.0, credits[0].Value, tolerance)
			},
		},
		{
			name: "Controle acima do tratamento inverte o sinal sem truncar",
			conversions: []domain.Conversion{
				convert("c1", day(2), 100),
				convert("k1", day(2), 100),
				convert("k2", day(2), 100),
				convert("k3", day(2), 100),
			},
			control: control,
			validate: func(t *testing.T, credits []domain.IncrementalCredit) {
				require.Len(t, credits, 1)
				assert.InDelta(t, -0.5, credits[0].IncrementalLift, tolerance)
				assert.InDelta(t, -200.0, credits[0].Value, tolerance)
			},
		},
		{
			name: "Grupo de controle vazio tem taxa zero",
			conversions: []domain.Conversion{
				convert("c1", day(2), 80),
				convert("c2", day(2), 120),
			},
			control: domain.ControlGroup{Name: "vazio"},
			validate: func(t *testing.T, credits []domain.IncrementalCredit) {
				require.Len(t, credits, 1)
				assert.InDelta(t, 0.5, credits[0].IncrementalLift, tolerance)
				assert.InDelta(t, 200.0, credits[0].Value, tolerance)
			},
		},
		{
			name:        "Sem conversões o valor médio é zero",
			conversions: nil,
			control:     control,
			validate: func(t *testing.T, credits []domain.IncrementalCredit) {
				require.Len(t, credits, 1)
				assert.Zero(t, credits[0].IncrementalLift)
				assert.Zero(t, credits[0].Value)
			},
		},
		{
			name: "Membros duplicados no controle contam uma vez",
			conversions: []domain.Conversion{
				convert("c1", day(2), 100),
				convert("c2", day(2), 100),
				convert("k1", day(2), 100),
				convert("k1", day(3), 100),
			},
			control: domain.ControlGroup{Name: "dup", CustomerIDs: []string{"k1", "k1", "k2", "k2"}},
			validate: func(t *testing.T, credits []domain.IncrementalCredit) {
				require.Len(t, credits, 1)
				assert.InDelta(t, 0.0, credits[0].IncrementalLift, tolerance)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Incremental(exposed, tt.conversions, tt.control))
		})
	}
}
