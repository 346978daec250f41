package repository

import (
	"strings"
	"testing"
)

func TestListStagesQueryOrdersByPosition(t *testing.T) {
	if !strings.Contains(listStagesByFunnelQuery, "ORDER BY position ASC, id ASC") {
		t.Error("stage listing must order by position with id tiebreak")
	}
	if !strings.Contains(listStagesByFunnelQuery, "WHERE funnel_id = $1") {
		t.Error("stage listing must be scoped to one funnel")
	}
}

func TestColumnConstantsMatchScanOrder(t *testing.T) {
	wantFunnel := []string{"id", "name", "description", "is_default", "created_at", "updated_at"}
	gotFunnel := strings.Split(funnelColumns, ", ")
	if len(gotFunnel) != len(wantFunnel) {
		t.Fatalf("funnelColumns has %d columns, want %d", len(gotFunnel), len(wantFunnel))
	}
	for i, col := range wantFunnel {
		if gotFunnel[i] != col {
			t.Errorf("funnelColumns[%d] = %q, want %q", i, gotFunnel[i], col)
		}
	}

	wantStage := []string{"id", "funnel_id", "name", "description", "color", "position", "created_at", "updated_at"}
	gotStage := strings.Split(stageColumns, ", ")
	if len(gotStage) != len(wantStage) {
		t.Fatalf("stageColumns has %d columns, want %d", len(gotStage), len(wantStage))
	}
	for i, col := range wantStage {
		if gotStage[i] != col {
			t.Errorf("stageColumns[%d] = %q, want %q", i, gotStage[i], col)
		}
	}
}
