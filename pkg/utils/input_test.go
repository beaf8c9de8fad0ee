package utils

import (
	"testing"
)

func TestSwipeTrackerInitialState(t *testing.T) {
	s := NewSwipeTracker()
	if s.Active() {
		t.Error("Expected tracker to be inactive initially")
	}
	if g := s.Feed(false, 10, 10); g != GestureNone {
		t.Errorf("Expected GestureNone without press, got %v", g)
	}
}

func TestSwipeTrackerGestures(t *testing.T) {
	tests := []struct {
		name   string
		points [][2]int
		want   Gesture
	}{
		{"点击", [][2]int{{100, 100}, {105, 102}}, GestureTap},
		{"向左滑动", [][2]int{{300, 100}, {250, 105}, {200, 110}}, GestureSwipeLeft},
		{"向右滑动", [][2]int{{100, 100}, {180, 90}}, GestureSwipeRight},
		{"垂直拖动", [][2]int{{100, 100}, {120, 300}}, GestureNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSwipeTracker()
			for _, p := range tt.points {
				if g := s.Feed(true, p[0], p[1]); g != GestureNone {
					t.Fatalf("按下期间不应产生手势, got %v", g)
				}
			}
			last := tt.points[len(tt.points)-1]
			if g := s.Feed(false, last[0], last[1]); g != tt.want {
				t.Errorf("Feed(release) = %v, 期望 %v", g, tt.want)
			}
			if s.Active() {
				t.Error("释放后不应处于按下状态")
			}
		})
	}
}

func TestSwipeTrackerDistanceAndReset(t *testing.T) {
	s := NewSwipeTracker()
	s.Threshold = 10
	s.Feed(true, 100, 200)
	s.Feed(true, 150, 280)

	if x, y := s.Start(); x != 100 || y != 200 {
		t.Errorf("Start() = (%d, %d), 期望 (100, 200)", x, y)
	}
	if dx, dy := s.Distance(); dx != 50 || dy != 80 {
		t.Errorf("Distance() = (%d, %d), 期望 (50, 80)", dx, dy)
	}

	s.Reset()
	if s.Active() || s.Threshold != 10 {
		t.Error("Reset 应清除跟踪并保留阈值")
	}
	if g := s.Feed(false, 0, 0); g != GestureNone {
		t.Errorf("Reset 后释放不应产生手势, got %v", g)
	}
}
