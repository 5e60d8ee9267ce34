package standings

import (
	"errors"
	"testing"
)

func poolOf(position int, ids ...int) Pool {
	p := Pool{Position: position}
	for _, id := range ids {
		p.Standings = append(p.Standings, TeamStanding{TeamID: id, GroupPosition: position})
	}
	return p
}

func TestSelectQualifiersDefaultRules(t *testing.T) {
	pools := []Pool{
		poolOf(1, 11, 21, 31, 41, 51),
		poolOf(2, 12, 22, 32, 42, 52),
		poolOf(3, 13, 23, 33, 43, 53),
		poolOf(4, 14, 24, 34, 44, 54),
		poolOf(5, 15, 25, 35, 45, 55),
		poolOf(6, 16, 26),
		poolOf(7, 17, 27),
	}

	got := SelectQualifiers(pools, DefaultQualificationConfig(), 5)
	assertOrder(t, got.DirectQualifiers, 11, 21, 31, 41, 51, 12, 22, 32)
	assertOrder(t, got.PlayInPool,
		42, 52,
		13, 23, 33, 43, 53,
		14, 24, 34, 44, 54,
		15, 25, 35, 45)
	if len(got.Shortfalls) != 0 {
		t.Fatalf("unexpected shortfalls: %+v", got.Shortfalls)
	}
}

func TestSelectQualifiersReportsShortfalls(t *testing.T) {
	pools := []Pool{
		poolOf(1, 11, 21),
		poolOf(2, 12, 22),
		poolOf(3, 13, 23),
		poolOf(4, 14, 24),
		poolOf(5, 15, 25),
	}

	got := SelectQualifiers(pools, DefaultQualificationConfig(), 2)
	assertOrder(t, got.DirectQualifiers, 11, 21, 12, 22)
	assertOrder(t, got.PlayInPool, 13, 23, 14, 24, 15, 25)

	want := []Shortfall{
		{Position: 2, Bucket: BucketDirect, Requested: 3, Available: 2},
		{Position: 5, Bucket: BucketPlayIn, Requested: 4, Available: 2},
	}
	if len(got.Shortfalls) != len(want) {
		t.Fatalf("expected %d shortfalls, got %+v", len(want), got.Shortfalls)
	}
	for i := range want {
		if got.Shortfalls[i] != want[i] {
			t.Fatalf("shortfall %d: expected %+v, got %+v", i, want[i], got.Shortfalls[i])
		}
	}
	if got.Shortfalls[1].Missing() != 2 {
		t.Fatalf("expected 2 missing, got %d", got.Shortfalls[1].Missing())
	}
}

func TestSelectQualifiersMissingPool(t *testing.T) {
	cfg := QualificationConfig{Quotas: []PoolQuota{{Position: 1, Direct: All, PlayIn: 0}}}

	got := SelectQualifiers(nil, cfg, 3)
	if len(got.DirectQualifiers) != 0 || len(got.PlayInPool) != 0 {
		t.Fatalf("expected nothing selected, got %+v", got)
	}
	if len(got.Shortfalls) != 1 || got.Shortfalls[0].Requested != 3 {
		t.Fatalf("expected one shortfall of 3, got %+v", got.Shortfalls)
	}
}

func TestSelectQualifiersNeverSelectsTwice(t *testing.T) {
	cfg := QualificationConfig{Quotas: []PoolQuota{{Position: 1, Direct: 1, PlayIn: All}}}

	got := SelectQualifiers([]Pool{poolOf(1, 1, 2, 3)}, cfg, 3)
	assertOrder(t, got.DirectQualifiers, 1)
	assertOrder(t, got.PlayInPool, 2, 3)
}

func TestParseQualificationRules(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []PoolQuota
		wantErr bool
	}{
		{
			name: "default rules",
			in:   "1:all:0, 2:3:all, 3:0:all, 4:0:all, 5:0:4",
			want: DefaultQualificationConfig().Quotas,
		},
		{name: "upper case all", in: "1:ALL:0", want: []PoolQuota{{Position: 1, Direct: All}}},
		{name: "empty", in: "", wantErr: true},
		{name: "missing field", in: "1:all", wantErr: true},
		{name: "negative quota", in: "1:-2:0", wantErr: true},
		{name: "zero position", in: "0:1:0", wantErr: true},
		{name: "duplicate position", in: "1:1:0,1:0:1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQualificationRules(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQualificationRules) {
					t.Fatalf("expected ErrInvalidQualificationRules, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Quotas) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got.Quotas)
			}
			for i := range tt.want {
				if got.Quotas[i] != tt.want[i] {
					t.Fatalf("quota %d: expected %+v, got %+v", i, tt.want[i], got.Quotas[i])
				}
			}
		})
	}
}

func TestBuildPoolsRanksAcrossGroups(t *testing.T) {
	tables := []GroupTable{
		{Standings: []TeamStanding{
			{TeamID: 11, GroupPosition: 1, WinPercentage: 1, PointsDifference: 10},
			{TeamID: 12, GroupPosition: 2, WinPercentage: 0.5, PointsDifference: 4},
			{TeamID: 13, GroupPosition: 3},
		}},
		{Standings: []TeamStanding{
			{TeamID: 21, GroupPosition: 1, WinPercentage: 1, PointsDifference: 30},
			{TeamID: 22, GroupPosition: 2, WinPercentage: 0.75, PointsDifference: -2},
		}},
	}

	pools := buildPools(tables, nil)
	if len(pools) != 3 {
		t.Fatalf("expected 3 pools, got %d", len(pools))
	}
	assertOrder(t, pools[0].Standings, 21, 11)
	assertOrder(t, pools[1].Standings, 22, 12)
	assertOrder(t, pools[2].Standings, 13)
	for _, p := range pools {
		for _, s := range p.Standings {
			if s.GroupPosition != p.Position {
				t.Fatalf("pool %d changed group position of team %d to %d", p.Position, s.TeamID, s.GroupPosition)
			}
		}
	}
}
