package service

import (
	"context"
	"testing"

	"github.com/lophocvn/lophoc-backend/internal/model"
)

// Admins manage every class and plain teachers manage none; neither path
// touches the store.
func TestCanManageRoleShortcuts(t *testing.T) {
	s := NewPermissionService(nil, nil)
	ctx := context.Background()

	ok, err := s.CanManage(ctx, &Claims{UserID: 1, Role: model.RoleAdmin}, 42)
	if err != nil || !ok {
		t.Errorf("admin: got (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = s.CanManage(ctx, &Claims{UserID: 2, Role: model.RoleTeacher}, 42)
	if err != nil || ok {
		t.Errorf("teacher: got (%v, %v), want (false, nil)", ok, err)
	}
}
