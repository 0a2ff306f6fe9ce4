package contacts

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/carnetapp/carnet/internal/common"
	"github.com/carnetapp/carnet/internal/logging"
	"github.com/carnetapp/carnet/internal/tablestore"
	"github.com/stretchr/testify/require"
)

// fakeSession implements sessionSource.
type fakeSession struct {
	email    string
	signedIn bool
}

func (f *fakeSession) Current() (string, bool) { return f.email, f.signedIn }

// fakeTableClient implements tableClient for unit tests.
type fakeTableClient struct {
	InsertRet tablestore.Row
	InsertErr error

	SelectRet []tablestore.Row
	SelectErr error

	SelectSingleRet tablestore.Row
	SelectSingleErr error

	UpdateErr error
	DeleteErr error

	LastTable         string
	LastInsertRow     tablestore.Row
	LastSelectFilters []tablestore.Filter
	LastSelectOrder   *tablestore.Order
	LastPatch         tablestore.Row
	LastFilters       []tablestore.Filter
}

func (f *fakeTableClient) Insert(ctx context.Context, table string, row tablestore.Row) (tablestore.Row, error) {
	f.LastTable = table
	f.LastInsertRow = row
	return f.InsertRet, f.InsertErr
}

func (f *fakeTableClient) Select(ctx context.Context, table string, columns []string, filters []tablestore.Filter, order *tablestore.Order) ([]tablestore.Row, error) {
	f.LastTable = table
	f.LastSelectFilters = filters
	f.LastSelectOrder = order
	return f.SelectRet, f.SelectErr
}

func (f *fakeTableClient) SelectSingle(ctx context.Context, table string, columns []string, filters []tablestore.Filter) (tablestore.Row, error) {
	f.LastTable = table
	f.LastSelectFilters = filters
	return f.SelectSingleRet, f.SelectSingleErr
}

func (f *fakeTableClient) Update(ctx context.Context, table string, patch tablestore.Row, filters []tablestore.Filter) error {
	f.LastTable = table
	f.LastPatch = patch
	f.LastFilters = filters
	return f.UpdateErr
}

func (f *fakeTableClient) Delete(ctx context.Context, table string, filters []tablestore.Filter) error {
	f.LastTable = table
	f.LastFilters = filters
	return f.DeleteErr
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validInput() Input {
	return Input{FirstName: "Marie", LastName: "Dupont", Phone: "0612345678", Email: "m@d.fr"}
}

func TestOperationsRequireSession(t *testing.T) {
	fake := &fakeTableClient{}
	svc := NewService(fake, &fakeSession{}, testLogger())
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)

	_, err = svc.Get(ctx, "c-1")
	require.ErrorIs(t, err, common.ErrNoSession)

	_, err = svc.Create(ctx, validInput())
	require.ErrorIs(t, err, common.ErrNoSession)

	require.ErrorIs(t, svc.Update(ctx, "c-1", validInput()), common.ErrNoSession)
	require.ErrorIs(t, svc.Delete(ctx, "c-1"), common.ErrNoSession)

	// No remote call was made without a session.
	require.Empty(t, fake.LastTable)
}

func TestListScopedToOwnerMostRecentFirst(t *testing.T) {
	fake := &fakeTableClient{
		SelectRet: []tablestore.Row{
			{"id": "c-2", "first_name": "Ana", "last_name": "Blanc", "phone": "0712345678", "created_by": "a@b.com", "created_at": "2026-02-01T00:00:00Z"},
			{"id": "c-1", "first_name": "Paul", "last_name": "Noir", "phone": "0612345678", "created_by": "a@b.com", "created_at": "2026-01-01T00:00:00Z"},
		},
	}
	svc := NewService(fake, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "c-2", items[0].ID)
	require.Equal(t, "Ana", items[0].FirstName)

	require.Equal(t, "contacts", fake.LastTable)
	require.Equal(t, []tablestore.Filter{tablestore.Eq("created_by", "a@b.com")}, fake.LastSelectFilters)
	require.Equal(t, &tablestore.Order{Column: "created_at", Descending: true}, fake.LastSelectOrder)
}

func TestCreateAttachesOwner(t *testing.T) {
	fake := &fakeTableClient{
		InsertRet: tablestore.Row{
			"id": "c-1", "first_name": "Marie", "last_name": "Dupont",
			"phone": "0612345678", "email": "m@d.fr", "created_by": "a@b.com",
		},
	}
	svc := NewService(fake, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	created, err := svc.Create(context.Background(), Input{
		FirstName: " Marie ",
		LastName:  " Dupont ",
		Phone:     " 0612345678 ",
		Email:     " m@d.fr ",
	})
	require.NoError(t, err)
	require.Equal(t, "c-1", created.ID)
	require.Equal(t, "a@b.com", created.CreatedBy)

	require.Equal(t, "a@b.com", fake.LastInsertRow["created_by"])
	require.Equal(t, "Marie", fake.LastInsertRow["first_name"])
	require.Equal(t, "m@d.fr", fake.LastInsertRow["email"])
}

func TestCreateBlankEmailIsNull(t *testing.T) {
	fake := &fakeTableClient{InsertRet: tablestore.Row{"id": "c-1"}}
	svc := NewService(fake, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	in := validInput()
	in.Email = "  "
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Nil(t, fake.LastInsertRow["email"])
}

func TestCreateRequiredFields(t *testing.T) {
	svc := NewService(&fakeTableClient{}, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	for _, in := range []Input{
		{LastName: "Dupont", Phone: "0612345678"},
		{FirstName: "Marie", Phone: "0612345678"},
		{FirstName: "Marie", LastName: "Dupont"},
	} {
		_, err := svc.Create(context.Background(), in)
		require.ErrorIs(t, err, ErrRequiredFields)
	}
}

func TestUpdateNeverTouchesOwner(t *testing.T) {
	fake := &fakeTableClient{}
	svc := NewService(fake, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	err := svc.Update(context.Background(), "c-1", validInput())
	require.NoError(t, err)

	require.NotContains(t, fake.LastPatch, "created_by")
	require.Equal(t, []tablestore.Filter{
		tablestore.Eq("id", "c-1"),
		tablestore.Eq("created_by", "a@b.com"),
	}, fake.LastFilters)
}

func TestDeleteScopedToOwner(t *testing.T) {
	fake := &fakeTableClient{}
	svc := NewService(fake, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	require.NoError(t, svc.Delete(context.Background(), "c-1"))
	require.Equal(t, "contacts", fake.LastTable)
	require.Equal(t, []tablestore.Filter{
		tablestore.Eq("id", "c-1"),
		tablestore.Eq("created_by", "a@b.com"),
	}, fake.LastFilters)
}

func TestGetNotFound(t *testing.T) {
	fake := &fakeTableClient{SelectSingleErr: tablestore.ErrNoRows}
	svc := NewService(fake, &fakeSession{email: "a@b.com", signedIn: true}, testLogger())

	_, err := svc.Get(context.Background(), "c-404")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
