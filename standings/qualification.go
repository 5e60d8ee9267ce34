package standings

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All забирает все оставшиеся команды пула.
const All = -1

var ErrInvalidQualificationRules = errors.New("invalid qualification rules")

// PoolQuota: сколько команд пула проходят напрямую и сколько из остальных идут в плей-ин.
type PoolQuota struct {
	Position int `json:"position"`
	Direct   int `json:"direct"`
	PlayIn   int `json:"play_in"`
}

type QualificationConfig struct {
	Quotas []PoolQuota `json:"quotas"`
}

// DefaultQualificationConfig is the 5-group, 16-team bracket rule: all group
// winners and the three best seconds qualify directly; the other seconds, all
// thirds and fourths, and the four best fifths play the play-in.
func DefaultQualificationConfig() QualificationConfig {
	return QualificationConfig{Quotas: []PoolQuota{
		{Position: 1, Direct: All, PlayIn: 0},
		{Position: 2, Direct: 3, PlayIn: All},
		{Position: 3, Direct: 0, PlayIn: All},
		{Position: 4, Direct: 0, PlayIn: All},
		{Position: 5, Direct: 0, PlayIn: 4},
	}}
}

func (c QualificationConfig) Validate() error {
	if len(c.Quotas) == 0 {
		return fmt.Errorf("%w: no quotas", ErrInvalidQualificationRules)
	}
	seen := make(map[int]bool, len(c.Quotas))
	for _, q := range c.Quotas {
		if q.Position <= 0 {
			return fmt.Errorf("%w: position must be positive, got %d", ErrInvalidQualificationRules, q.Position)
		}
		if seen[q.Position] {
			return fmt.Errorf("%w: position %d declared twice", ErrInvalidQualificationRules, q.Position)
		}
		seen[q.Position] = true
		if q.Direct < All || q.PlayIn < All {
			return fmt.Errorf("%w: position %d has a negative quota", ErrInvalidQualificationRules, q.Position)
		}
	}
	return nil
}

// ParseQualificationRules reads "position:direct:playin" triples separated by
// commas, e.g. "1:all:0,2:3:all,5:0:4".
func ParseQualificationRules(s string) (QualificationConfig, error) {
	var cfg QualificationConfig
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return QualificationConfig{}, fmt.Errorf("%w: %q is not position:direct:playin", ErrInvalidQualificationRules, part)
		}
		pos, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return QualificationConfig{}, fmt.Errorf("%w: position %q: %v", ErrInvalidQualificationRules, fields[0], err)
		}
		direct, err := parseQuota(fields[1])
		if err != nil {
			return QualificationConfig{}, err
		}
		playIn, err := parseQuota(fields[2])
		if err != nil {
			return QualificationConfig{}, err
		}
		cfg.Quotas = append(cfg.Quotas, PoolQuota{Position: pos, Direct: direct, PlayIn: playIn})
	}
	if err := cfg.Validate(); err != nil {
		return QualificationConfig{}, err
	}
	return cfg, nil
}

func parseQuota(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: quota %q must be a non-negative number or \"all\"", ErrInvalidQualificationRules, s)
	}
	return n, nil
}

const (
	BucketDirect = "direct"
	BucketPlayIn = "play_in"
)

// Shortfall - квота, которую не хватило команд заполнить.
type Shortfall struct {
	Position  int    `json:"position"`
	Bucket    string `json:"bucket"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (s Shortfall) Missing() int {
	return s.Requested - s.Available
}

type QualificationResult struct {
	DirectQualifiers []TeamStanding `json:"direct_qualifiers"`
	PlayInPool       []TeamStanding `json:"play_in_pool"`
	Shortfalls       []Shortfall    `json:"shortfalls,omitempty"`
}

// SelectQualifiers slices the ranked pools into direct qualifiers and the
// play-in pool. Quotas larger than a pool take every available team and are
// reported as shortfalls. An All quota expects one team per group.
func SelectQualifiers(pools []Pool, cfg QualificationConfig, groupCount int) QualificationResult {
	quotas := make([]PoolQuota, len(cfg.Quotas))
	copy(quotas, cfg.Quotas)
	sort.SliceStable(quotas, func(i, j int) bool { return quotas[i].Position < quotas[j].Position })

	res := QualificationResult{
		DirectQualifiers: make([]TeamStanding, 0),
		PlayInPool:       make([]TeamStanding, 0),
	}
	for _, q := range quotas {
		remaining := poolAt(pools, q.Position)

		var taken []TeamStanding
		taken, remaining = take(remaining, q.Direct)
		res.DirectQualifiers = append(res.DirectQualifiers, taken...)
		if sf, short := shortfall(q.Position, BucketDirect, q.Direct, len(taken), groupCount); short {
			res.Shortfalls = append(res.Shortfalls, sf)
		}

		// Квота All для плей-ина ждёт только то, что осталось после прямой квоты.
		expectPlayIn := 0
		if q.Direct != All {
			expectPlayIn = groupCount - q.Direct
		}
		taken, _ = take(remaining, q.PlayIn)
		res.PlayInPool = append(res.PlayInPool, taken...)
		if sf, short := shortfall(q.Position, BucketPlayIn, q.PlayIn, len(taken), expectPlayIn); short {
			res.Shortfalls = append(res.Shortfalls, sf)
		}
	}
	return res
}

func take(pool []TeamStanding, n int) (taken, rest []TeamStanding) {
	if n == All || n >= len(pool) {
		return pool, nil
	}
	return pool[:n], pool[n:]
}

func shortfall(position int, bucket string, quota, got, expectAll int) (Shortfall, bool) {
	requested := quota
	if quota == All {
		requested = expectAll
	}
	if requested < 0 {
		requested = 0
	}
	if got >= requested {
		return Shortfall{}, false
	}
	return Shortfall{Position: position, Bucket: bucket, Requested: requested, Available: got}, true
}
