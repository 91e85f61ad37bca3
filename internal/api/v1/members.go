package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/policy"
	"github.com/gosuda/crew/internal/server/middleware"
)

type ListMembersInput struct {
	Department string `query:"department" doc:"Department dropdown value or 'all'"`
	Search     string `query:"q" doc:"Free-text search over name, email, department, roles"`
}

type MemberView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Department string   `json:"department,omitempty"`
}

type ListMembersOutput struct {
	Body struct {
		Members []MemberView `json:"members"`
	}
}

type AssignableRosterOutput struct {
	Body struct {
		Members []MemberView `json:"members"`
		Level   string       `json:"level"`
	}
}

// RegisterMemberRoutes wires the roster views. The assignable roster goes
// through the fetcher, which resolves overlapping refreshes last-write-wins
// per acting user.
func RegisterMemberRoutes(api huma.API, store DataStore, roster *policy.RosterFetcher) {
	huma.Register(api, huma.Operation{
		OperationID: "list-members",
		Method:      http.MethodGet,
		Path:        "/members",
		Summary:     "List members visible to the acting user",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
		actor, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		all, err := store.Users().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list members", err)
		}

		visible := policy.VisibleMembers(actor, all, input.Department, input.Search)

		out := &ListMembersOutput{}
		out.Body.Members = memberViews(visible)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assignable-roster",
		Method:      http.MethodGet,
		Path:        "/members/assignable",
		Summary:     "List assignment candidates for the acting user",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, _ *struct{}) (*AssignableRosterOutput, error) {
		claimed, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		// The roster should carry the full stored record, not the bare
		// claims user.
		actor, err := store.Users().GetByID(ctx, claimed.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load acting user", err)
		}

		members, err := roster.Refresh(ctx, actor)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to fetch roster", err)
		}

		out := &AssignableRosterOutput{}
		out.Body.Members = memberViews(members)
		out.Body.Level = policy.PermissionLevel(actor).String()
		return out, nil
	})
}

func memberViews(users []*domain.User) []MemberView {
	out := make([]MemberView, 0, len(users))
	for _, u := range users {
		out = append(out, MemberView{
			ID:         u.ID.String(),
			Name:       u.Name,
			Email:      u.Email,
			Roles:      u.Roles.Strings(),
			Department: u.Department,
		})
	}
	return out
}
