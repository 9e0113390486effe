package planning

import "testing"

// discovererDir exposes the directory roots are resolved against
func (p *Planner) discovererDir(t *testing.T) string {
	t.Helper()
	return p.discoverer.Dir()
}
