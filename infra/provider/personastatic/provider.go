// Package personastatic implements the persona collaborator with a static
// persona-to-allocation table. The real persona assignment comes from the
// risk-aptitude survey service; this provider only maps an assignment to its
// ideal allocation.
package personastatic

import (
	"context"
	"sync"

	"github.com/arthamitra/arthamitra/pkg/provider"
	"github.com/google/uuid"
)

// Targets prescribed per persona bucket.
var targets = map[string]provider.Allocation{
	"CONSERVATIVE": {Equity: 20, MutualFund: 80},
	"BALANCED":     {Equity: 50, MutualFund: 50},
	"GROWTH":       {Equity: 65, MutualFund: 35},
	"AGGRESSIVE":   {Equity: 80, MutualFund: 20},
}

// Provider resolves persona targets from in-memory assignments.
type Provider struct {
	defaultPersona string

	mu          sync.RWMutex
	assignments map[uuid.UUID]string
}

// New creates the provider. defaultPersona is used for users without an
// explicit assignment; pass "" to make unassigned users fail lookup instead.
func New(defaultPersona string) *Provider {
	return &Provider{
		defaultPersona: defaultPersona,
		assignments:    make(map[uuid.UUID]string),
	}
}

// Assign records a persona for a user, as the survey service would.
func (p *Provider) Assign(userID uuid.UUID, persona string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assignments[userID] = persona
}

// GetIdealAllocation implements provider.PersonaProvider.
func (p *Provider) GetIdealAllocation(ctx context.Context, userID uuid.UUID) (*provider.PersonaTarget, error) {
	p.mu.RLock()
	persona, ok := p.assignments[userID]
	p.mu.RUnlock()
	if !ok {
		persona = p.defaultPersona
	}
	ideal, ok := targets[persona]
	if !ok {
		return nil, provider.ErrPersonaNotFound
	}
	return &provider.PersonaTarget{Persona: persona, Ideal: ideal}, nil
}

var _ provider.PersonaProvider = (*Provider)(nil)
