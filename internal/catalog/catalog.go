// Package catalog lists the VitiBrasil file categories served by the
// download service and resolves request keys to them.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/vitibrasil/internal/common"
)

// DefaultBaseURL is the page every category option is served from.
const DefaultBaseURL = "http://vitibrasil.cnpuv.embrapa.br/index.php"

// MatchMode selects how a request key is compared with the registry.
type MatchMode string

const (
	// MatchPrefix accepts the first entry whose file name starts with the
	// key, ignoring case. "prod" resolves to Producao.csv.
	MatchPrefix MatchMode = "prefix"

	// MatchExact accepts only the entry whose key equals the request key,
	// ignoring case, surrounding spaces and an optional ".csv" suffix.
	MatchExact MatchMode = "exact"
)

// Entry describes one downloadable category.
type Entry struct {
	Key       string
	SourceURL string
	FileName  string
}

type definition struct {
	key    string
	option string
}

// definitions is kept in the order the site lists its tabs.
var definitions = []definition{
	{key: "Producao", option: "opt_02"},
	{key: "Processamento", option: "opt_03"},
	{key: "Comercializacao", option: "opt_04"},
	{key: "Importacao", option: "opt_05"},
	{key: "Exportacao", option: "opt_06"},
}

// Keys returns the canonical category keys in registry order.
func Keys() []string {
	keys := make([]string, 0, len(definitions))
	for _, d := range definitions {
		keys = append(keys, d.key)
	}
	return keys
}

// ParseMatchMode validates a configured match mode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case MatchPrefix, MatchExact:
		return m, nil
	default:
		return "", fmt.Errorf("unknown category match mode %q", s)
	}
}

// Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	entries []Entry
	mode    MatchMode
}

// New builds the registry with source pages under baseURL.
func New(baseURL string, mode MatchMode) (*Registry, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if _, err := ParseMatchMode(string(mode)); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(definitions))
	for _, d := range definitions {
		u := *base
		q := u.Query()
		q.Set("opcao", d.option)
		u.RawQuery = q.Encode()

		entries = append(entries, Entry{
			Key:       d.key,
			SourceURL: u.String(),
			FileName:  d.key + ".csv",
		})
	}

	return &Registry{entries: entries, mode: mode}, nil
}

// Entries returns a copy of the registry contents.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Resolve finds the entry for key or returns common.ErrNotFound.
func (r *Registry) Resolve(key string) (Entry, error) {
	if strings.TrimSpace(key) == "" {
		return Entry{}, common.ErrNotFound
	}

	for _, e := range r.entries {
		if r.matches(e, key) {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("category %q: %w", key, common.ErrNotFound)
}

func (r *Registry) matches(e Entry, key string) bool {
	if r.mode == MatchExact {
		k := strings.TrimSpace(key)
		if len(k) > 4 && strings.EqualFold(k[len(k)-4:], ".csv") {
			k = k[:len(k)-4]
		}
		return strings.EqualFold(k, e.Key)
	}

	return strings.HasPrefix(strings.ToLower(e.FileName), strings.ToLower(key))
}
