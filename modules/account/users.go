package account

import (
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

type userIDRequest struct {
	ID string `path:"id"`
}

type updateUserRequest struct {
	ID               string  `path:"id" json:"-"`
	Name             *string `json:"name"`
	Avatar           *string `json:"avatar"`
	Role             *string `json:"role"`
	BiometricEnabled *bool   `json:"biometricEnabled"`
	Password         *string `json:"password"`
}

func (m *Module) me(ctx handler.Context, _ noRequest) handler.Response {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	fresh, err := m.svc.Me(ctx, user.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(fresh)
}

func (m *Module) listUsers(ctx handler.Context, _ noRequest) handler.Response {
	users, err := m.svc.ListUsers(ctx)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(users, handler.WithJSONMeta(map[string]any{"results": len(users)}))
}

func (m *Module) getUser(ctx handler.Context, req userIDRequest) handler.Response {
	user, err := m.svc.GetUser(ctx, req.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(user)
}

func (m *Module) updateUser(ctx handler.Context, req updateUserRequest) handler.Response {
	actor, _ := auth.UserFromContext(ctx)
	user, err := m.svc.UpdateUser(ctx, actor, req.ID, auth.UserPatch{
		Name:             req.Name,
		Avatar:           req.Avatar,
		Role:             req.Role,
		BiometricEnabled: req.BiometricEnabled,
		Password:         req.Password,
	})
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(user, handler.WithJSONMessage("User updated successfully"))
}

func (m *Module) deleteUser(ctx handler.Context, req userIDRequest) handler.Response {
	if err := m.svc.DeleteUser(ctx, req.ID); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Empty()
}
