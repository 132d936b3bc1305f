package sharing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"listd/internal/apperr"
	"listd/internal/db"
	"listd/internal/models"
	"listd/internal/sharing"
	"listd/internal/store"
)

type fixture struct {
	engine *sharing.Engine
	store  *store.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), database))
	t.Cleanup(func() { _ = db.Close(database) })

	st := store.New(database)
	return fixture{engine: sharing.NewEngine(st), store: st}
}

func (f fixture) user(t *testing.T, email string) models.User {
	t.Helper()
	user, err := f.store.CreateUser(context.Background(), email, "hash")
	require.NoError(t, err)
	return user
}

func TestInviteCreatesPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	assert.Equal(t, inviter.ID, inv.InviterID)
	assert.Equal(t, invitee.ID, inv.InviteeID)
	assert.Equal(t, models.InviteStatusPending, inv.Status)
	assert.Equal(t, models.PermissionRead, inv.Permission)
	assert.NotEqual(t, uuid.Nil, inv.ID)
}

func TestInviteUnknownInvitee(t *testing.T) {
	f := newFixture(t)
	inviter := f.user(t, "b@example.com")

	_, err := f.engine.Invite(context.Background(), inviter.ID, "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestInviteSelf(t *testing.T) {
	f := newFixture(t)
	inviter := f.user(t, "b@example.com")

	_, err := f.engine.Invite(context.Background(), inviter.ID, "b@example.com")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestInviteDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	f.user(t, "a@example.com")

	_, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	// Repeating the invite while the first is PENDING conflicts.
	_, err = f.engine.Invite(ctx, inviter.ID, "a@example.com")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestInviteDuplicateAfterAccept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)
	_, err = f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionAccepted)
	require.NoError(t, err)

	// An ACCEPTED invitation blocks re-inviting just like a PENDING one.
	_, err = f.engine.Invite(ctx, inviter.ID, "a@example.com")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestReinviteAllowedAfterRejection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	resp, err := f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionRejected)
	require.NoError(t, err)
	assert.Nil(t, resp)

	// Rejection deleted the record, so the pair is free again.
	_, err = f.engine.Invite(ctx, inviter.ID, "a@example.com")
	assert.NoError(t, err)
}

func TestInviteePinnedByIDNotEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	// The invitation points at the user id, not the email string.
	assert.Equal(t, invitee.ID, inv.InviteeID)

	invs, err := f.engine.List(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, invs.Received, 1)
	assert.Equal(t, inv.ID, invs.Received[0].ID)
}

func TestListSplitsDirections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "a@example.com")
	bob := f.user(t, "b@example.com")
	f.user(t, "c@example.com")

	fromBob, err := f.engine.Invite(ctx, bob.ID, "a@example.com")
	require.NoError(t, err)
	toCarol, err := f.engine.Invite(ctx, alice.ID, "c@example.com")
	require.NoError(t, err)

	invs, err := f.engine.List(ctx, alice.ID)
	require.NoError(t, err)

	require.Len(t, invs.Sent, 1)
	assert.Equal(t, toCarol.ID, invs.Sent[0].ID)
	require.Len(t, invs.Received, 1)
	assert.Equal(t, fromBob.ID, invs.Received[0].ID)

	// Preloaded identities let clients show who is involved.
	require.NotNil(t, invs.Received[0].Inviter)
	assert.Equal(t, "b@example.com", invs.Received[0].Inviter.Email)

	// Carol never appears in Alice's received list.
	for _, inv := range invs.Received {
		assert.Equal(t, alice.ID, inv.InviteeID)
	}
}

func TestRespondAcceptPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	accepted, err := f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionAccepted)
	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Equal(t, models.InviteStatusAccepted, accepted.Status)

	// Responding again to a resolved invitation conflicts.
	_, err = f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionAccepted)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	_, err = f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionRejected)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRespondRejectDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	resp, err := f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionRejected)
	require.NoError(t, err)
	assert.Nil(t, resp)

	// The id is gone for good; a second respond reports NotFound.
	_, err = f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionRejected)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	invs, err := f.engine.List(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, invs.Received)
}

func TestRespondOnlyByInvitee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inviter := f.user(t, "b@example.com")
	invitee := f.user(t, "a@example.com")
	outsider := f.user(t, "c@example.com")

	inv, err := f.engine.Invite(ctx, inviter.ID, "a@example.com")
	require.NoError(t, err)

	// Neither a third party nor the inviter may answer.
	_, err = f.engine.Respond(ctx, outsider.ID, inv.ID, sharing.DecisionAccepted)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = f.engine.Respond(ctx, inviter.ID, inv.ID, sharing.DecisionAccepted)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// The failed attempts left the invitation untouched.
	got, err := f.store.InvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, got.Status)

	_, err = f.engine.Respond(ctx, invitee.ID, inv.ID, sharing.DecisionAccepted)
	assert.NoError(t, err)
}

func TestSharedTodosScopedToAcceptedInviters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "a@example.com")
	bob := f.user(t, "b@example.com")
	carol := f.user(t, "c@example.com")

	t1, err := f.store.CreateTodo(ctx, bob.ID, "T1", "")
	require.NoError(t, err)
	t2, err := f.store.CreateTodo(ctx, bob.ID, "T2", "")
	require.NoError(t, err)
	_, err = f.store.CreateTask(ctx, bob.ID, t1.ID, "first", false)
	require.NoError(t, err)

	// Carol's todos stay invisible: her invitation is still PENDING.
	_, err = f.store.CreateTodo(ctx, carol.ID, "hidden", "")
	require.NoError(t, err)
	_, err = f.engine.Invite(ctx, carol.ID, "a@example.com")
	require.NoError(t, err)

	inv, err := f.engine.Invite(ctx, bob.ID, "a@example.com")
	require.NoError(t, err)
	_, err = f.engine.Respond(ctx, alice.ID, inv.ID, sharing.DecisionAccepted)
	require.NoError(t, err)

	shared, err := f.engine.SharedTodos(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, shared, 2)

	ids := []uuid.UUID{shared[0].ID, shared[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{t1.ID, t2.ID}, ids)
	for _, todo := range shared {
		assert.Equal(t, bob.ID, todo.OwnerID)
		if todo.ID == t1.ID {
			require.Len(t, todo.Tasks, 1)
			assert.Equal(t, "first", todo.Tasks[0].Content)
		}
	}
}

func TestSharedTodosEmptyWithoutAcceptedInvites(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "a@example.com")

	shared, err := f.engine.SharedTodos(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, shared)
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		raw     string
		want    sharing.Decision
		wantErr bool
	}{
		{"ACCEPTED", sharing.DecisionAccepted, false},
		{"REJECTED", sharing.DecisionRejected, false},
		{"PENDING", "", true},
		{"accepted", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := sharing.ParseDecision(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
