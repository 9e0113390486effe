// Package envprofile holds the fixed set of environment variables applied to
// the orchestrator process once, before any test group runs. Parallel shards
// already provide the outer parallelism, so numeric libraries are pinned to a
// single thread to avoid oversubscription and timing-sensitive flakes.
package envprofile

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/joho/godotenv"
)

// Defaults disable implicit multithreading and pin thread pools to one thread
var Defaults = map[string]string{
	"OMP_NUM_THREADS":      "1",
	"MKL_NUM_THREADS":      "1",
	"OPENBLAS_NUM_THREADS": "1",
	"NUMEXPR_NUM_THREADS":  "1",
	"TVM_NUM_THREADS":      "1",
	"TVM_BIND_THREADS":     "0",
}

// Profile is an immutable mapping of environment variables
type Profile struct {
	vars map[string]string

	once     sync.Once
	applyErr error
}

// New builds a profile from the defaults overlaid with each of the given maps in order.
func New(overrides ...map[string]string) *Profile {
	vars := make(map[string]string, len(Defaults))
	for k, v := range Defaults {
		vars[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			vars[k] = v
		}
	}
	return &Profile{vars: vars}
}

// FromFile builds a profile from the defaults, the dotenv file at path (if
// path is not empty) and then overrides. The file is read without touching
// the process environment.
func FromFile(path string, overrides map[string]string) (*Profile, error) {
	if path == "" {
		return New(overrides), nil
	}
	fileVars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return New(fileVars, overrides), nil
}

// Keys returns the variable names in sorted order
func (p *Profile) Keys() []string {
	keys := make([]string, 0, len(p.vars))
	for k := range p.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns KEY=VALUE pairs in sorted key order
func (p *Profile) Environ() []string {
	env := make([]string, 0, len(p.vars))
	for _, k := range p.Keys() {
		env = append(env, k+"="+p.vars[k])
	}
	return env
}

// Apply sets every variable in the process environment. Only the first call
// has an effect; later calls return the first call's result, so the profile
// can never be reapplied mid-run.
func (p *Profile) Apply() error {
	p.once.Do(func() {
		for _, k := range p.Keys() {
			if err := os.Setenv(k, p.vars[k]); err != nil {
				p.applyErr = fmt.Errorf("set %s: %w", k, err)
				return
			}
		}
	})
	return p.applyErr
}
