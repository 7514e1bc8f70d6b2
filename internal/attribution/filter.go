// Package attribution implementa as estratégias de atribuição de conversões a canais de marketing.
//
// Todas as estratégias são funções puras sobre duas tabelas somente leitura (touchpoints e
// conversões) e podem ser executadas em paralelo sem estado compartilhado.
package attribution

import (
	"sort"
	"time"

	"github.com/vfg2006/attribution-api/internal/domain"
)

// FilterTouchpoints retorna os touchpoints do cliente com timestamp <= cutoff, em ordem
// crescente de tempo. Empates mantêm a ordem de entrada.
func FilterTouchpoints(touchpoints []domain.Touchpoint, customerID string, cutoff time.Time) []domain.Touchpoint {
	filtered := make([]domain.Touchpoint, 0)
	for _, tp := range touchpoints {
		if tp.CustomerID == customerID && !tp.Timestamp.After(cutoff) {
			filtered = append(filtered, tp)
		}
	}

	sortByTimestamp(filtered)
	return filtered
}

// TouchpointIndex agrupa os touchpoints por cliente, já ordenados por tempo
type TouchpointIndex struct {
	byCustomer map[string][]domain.Touchpoint
	channels   []string
}

// NewTouchpointIndex constrói o índice uma única vez por execução
func NewTouchpointIndex(touchpoints []domain.Touchpoint) *TouchpointIndex {
	idx := &TouchpointIndex{
		byCustomer: make(map[string][]domain.Touchpoint),
	}

	seen := make(map[string]struct{})
	for _, tp := range touchpoints {
		idx.byCustomer[tp.CustomerID] = append(idx.byCustomer[tp.CustomerID], tp)
		if _, ok := seen[tp.Channel]; !ok {
			seen[tp.Channel] = struct{}{}
			idx.channels = append(idx.channels, tp.Channel)
		}
	}

	for _, customerTouches := range idx.byCustomer {
		sortByTimestamp(customerTouches)
	}

	return idx
}

// Before retorna os touchpoints do cliente até o cutoff (inclusive).
// Como a lista está ordenada, o resultado é um prefixo e não deve ser modificado.
func (idx *TouchpointIndex) Before(customerID string, cutoff time.Time) []domain.Touchpoint {
	customerTouches := idx.byCustomer[customerID]
	n := sort.Search(len(customerTouches), func(i int) bool {
		return customerTouches[i].Timestamp.After(cutoff)
	})
	return customerTouches[:n]
}

// Channels retorna os canais distintos na ordem da primeira aparição
func (idx *TouchpointIndex) Channels() []string {
	return idx.channels
}

func sortByTimestamp(touchpoints []domain.Touchpoint) {
	sort.SliceStable(touchpoints, func(i, j int) bool {
		return touchpoints[i].Timestamp.Before(touchpoints[j].Timestamp)
	})
}
