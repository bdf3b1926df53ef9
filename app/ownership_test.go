package app

import (
	"testing"

	"github.com/blogicum-app/blogicum-be/model"
)

func TestCanMutate(t *testing.T) {
	alice := &model.User{Id: "uid-alice", Username: "alice"}
	bob := &model.User{Id: "uid-bob", Username: "bob"}

	tests := []struct {
		name   string
		author *model.User
		viewer *model.User
		want   bool
	}{
		{"author mutates own entity", alice, alice, true},
		{"other user denied", alice, bob, false},
		{"anonymous denied without error", alice, nil, false},
		{"orphaned entity denied", nil, alice, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(tt.author, tt.viewer); got != tt.want {
				t.Errorf("CanMutate() = %v, want %v", got, tt.want)
			}
		})
	}
}
