package od2veh

import (
	"math"
	"testing"
)

func TestShortestRouteVia(t *testing.T) {
	net := crossNetwork(t)
	route, err := net.ShortestRouteVia(1001, 2001, 3001)
	if err != nil {
		t.Fatal(err)
	}
	expectedPath := []NodeID{1001, 2001, 3001}
	if len(route.Path) != len(expectedPath) {
		t.Fatalf("Constrained path must be %v, but got %v", expectedPath, route.Path)
	}
	for i := range expectedPath {
		if route.Path[i] != expectedPath[i] {
			t.Fatalf("Constrained path must be %v, but got %v", expectedPath, route.Path)
		}
	}
	if route.LengthMeters != 2000.0 {
		t.Errorf("Constrained route length must be 2000, but got %f", route.LengthMeters)
	}
	if math.Abs(route.TimeMinutes-2.0) > 1e-9 {
		t.Errorf("Constrained route time must be 2.0 minutes, but got %f", route.TimeMinutes)
	}
}

func TestViaNodeNotDuplicated(t *testing.T) {
	net := crossNetwork(t)
	route, err := net.ShortestRouteVia(5001, 2001, 4001)
	if err != nil {
		t.Fatal(err)
	}
	seen := 0
	for _, id := range route.Path {
		if id == 2001 {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Via node must appear exactly once in the path, but appears %d times: %v", seen, route.Path)
	}
}

func TestConstrainedNeverShorter(t *testing.T) {
	net := crossNetwork(t)
	pairs := [][2]NodeID{
		{1001, 3001},
		{3001, 1001},
		{4001, 5001},
		{6001, 3001},
		{5001, 1001},
	}
	for _, pair := range pairs {
		direct, err := net.ShortestRoute(pair[0], pair[1])
		if err != nil {
			t.Fatal(err)
		}
		via, err := net.ShortestRouteVia(pair[0], 2001, pair[1])
		if err != nil {
			t.Fatal(err)
		}
		if via.LengthMeters < direct.LengthMeters-1e-9 {
			t.Errorf("Constrained route %d -> %d must not be shorter: %f < %f", pair[0], pair[1], via.LengthMeters, direct.LengthMeters)
		}
		if ratio := DetourRatio(direct, via); ratio < 1.0-1e-9 {
			t.Errorf("Detour ratio for %d -> %d must be >= 1.0, but got %f", pair[0], pair[1], ratio)
		}
	}
}

func TestDetourRatioDegenerate(t *testing.T) {
	direct := Route{Path: []NodeID{2001}}
	via := Route{Path: []NodeID{2001, 1001, 2001}, LengthMeters: 2000}
	if ratio := DetourRatio(direct, via); !math.IsNaN(ratio) {
		t.Errorf("Detour ratio over degenerate direct route must be NaN, but got %f", ratio)
	}
}
