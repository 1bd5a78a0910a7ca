package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcat/internal/core/apperror"
	"shopcat/internal/core/id"
)

// memRepo is an in-memory Repository with the same observable contract as
// the postgres implementation: duplicate keys surface as duplicate errors,
// misses as not-found, listing follows insertion order.
type memRepo struct {
	order    []id.ID
	products map[id.ID]*Product
}

func newMemRepo() *memRepo {
	return &memRepo{products: make(map[id.ID]*Product)}
}

func cloneProduct(p *Product) *Product {
	cp := *p
	cp.Sizes = append([]string(nil), p.Sizes...)
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Images = append([]Image(nil), p.Images...)
	if p.Description != nil {
		d := *p.Description
		cp.Description = &d
	}
	return &cp
}

func (r *memRepo) snapshot() *memRepo {
	snap := newMemRepo()
	snap.order = append([]id.ID(nil), r.order...)
	for k, v := range r.products {
		snap.products[k] = cloneProduct(v)
	}
	return snap
}

func (r *memRepo) restore(snap *memRepo) {
	r.order = snap.order
	r.products = snap.products
}

func (r *memRepo) Create(_ context.Context, p *Product) error {
	for _, existing := range r.products {
		if strings.EqualFold(existing.Title, p.Title) {
			return apperror.NewDuplicate(
				fmt.Sprintf("Key (title)=(%s) already exists.", p.Title))
		}
		if existing.Slug == p.Slug {
			return apperror.NewDuplicate(
				fmt.Sprintf("Key (slug)=(%s) already exists.", p.Slug))
		}
	}
	r.products[p.ID] = cloneProduct(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return cloneProduct(p), nil
}

func (r *memRepo) GetByTerm(_ context.Context, term string) (*Product, error) {
	for _, pid := range r.order {
		p := r.products[pid]
		if strings.EqualFold(p.Title, term) || p.Slug == strings.ToLower(term) {
			return cloneProduct(p), nil
		}
	}
	return nil, apperror.NewNotFound("product", term)
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*Product, error) {
	if offset >= len(r.order) {
		return nil, nil
	}
	ids := r.order[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]*Product, len(ids))
	for i, pid := range ids {
		out[i] = cloneProduct(r.products[pid])
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, p *Product, replaceImages bool) error {
	existing, ok := r.products[p.ID]
	if !ok {
		return apperror.NewNotFound("product", p.ID.String())
	}
	for _, other := range r.products {
		if other.ID == p.ID {
			continue
		}
		if strings.EqualFold(other.Title, p.Title) {
			return apperror.NewDuplicate(
				fmt.Sprintf("Key (title)=(%s) already exists.", p.Title))
		}
	}
	updated := cloneProduct(p)
	if !replaceImages {
		updated.Images = append([]Image(nil), existing.Images...)
	}
	r.products[p.ID] = updated
	return nil
}

func (r *memRepo) Delete(_ context.Context, productID id.ID) error {
	if _, ok := r.products[productID]; !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	delete(r.products, productID)
	for i, pid := range r.order {
		if pid == productID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memRepo) DeleteAll(_ context.Context) error {
	r.order = nil
	r.products = make(map[id.ID]*Product)
	return nil
}

// memTxManager snapshots the repo before the unit of work and restores it
// when the function fails, mirroring a real rollback.
type memTxManager struct {
	repo *memRepo
}

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.restore(snap)
		return err
	}
	return nil
}

// failingRecorder fails every change-log write, forcing a rollback.
type failingRecorder struct{}

func (failingRecorder) Record(context.Context, id.ID, ChangeAction, any) error {
	return errors.New("change log unavailable")
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc := NewService(ServiceConfig{
		Repo:      repo,
		TxManager: &memTxManager{repo: repo},
	})
	return svc, repo
}

func mustCreate(t *testing.T, svc *Service, in CreateInput) *Plain {
	t.Helper()
	plain, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return plain
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	plain := mustCreate(t, svc, CreateInput{
		Title:  "Men's Chill Crew Neck",
		Price:  decimal.NewFromInt(75),
		Gender: GenderMen,
		Images: []string{"front.jpg", "back.jpg", "side.jpg"},
	})

	assert.Equal(t, "mens_chill_crew_neck", plain.Slug)
	assert.Equal(t, []string{"front.jpg", "back.jpg", "side.jpg"}, plain.Images)

	got, err := svc.FindOnePlain(ctx, plain.ID.String())
	require.NoError(t, err)
	assert.Equal(t, plain.Images, got.Images)
}

func TestService_Create_InvalidPayload(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Gender: GenderMen})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.order)
}

func TestService_Create_DuplicateTitle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := mustCreate(t, svc, CreateInput{Title: "Raven Tee", Gender: GenderMen})

	_, err := svc.Create(ctx, CreateInput{Title: "Raven Tee", Gender: GenderWomen})
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))

	// first remains intact and resolvable
	got, err := svc.FindOnePlain(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Equal(t, GenderMen, got.Gender)
}

func TestService_FindOne_Resolution(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, CreateInput{
		Title:  "Plaid Mode Tee",
		Gender: GenderMen,
	})

	tests := []struct {
		name string
		term string
	}{
		{"by id", created.ID.String()},
		{"by exact title", "Plaid Mode Tee"},
		{"by title case-insensitive", "pLaId MoDe TeE"},
		{"by slug", "plaid_mode_tee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.FindOne(ctx, tt.term)
			require.NoError(t, err)
			assert.Equal(t, created.ID, p.ID)
		})
	}
}

func TestService_FindOne_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		term string
	}{
		{"unknown uuid", id.New().String()},
		{"unknown term", "no_such_product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindOne(ctx, tt.term)
			require.Error(t, err)
			assert.True(t, apperror.IsNotFound(err))
			appErr, _ := apperror.AsAppError(err)
			assert.Equal(t, tt.term, appErr.Details["id"])
		})
	}
}

func TestService_List_Pagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var all []id.ID
	for i := 0; i < 5; i++ {
		p := mustCreate(t, svc, CreateInput{
			Title:  fmt.Sprintf("Tee %d", i),
			Gender: GenderUnisex,
		})
		all = append(all, p.ID)
	}

	limit, offset := 2, 0
	first, err := svc.List(ctx, Pagination{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	require.Len(t, first, 2)

	offset2 := 2
	second, err := svc.List(ctx, Pagination{Limit: &limit, Offset: &offset2})
	require.NoError(t, err)
	require.Len(t, second, 2)

	// windows are disjoint and follow insertion order
	assert.Equal(t, all[0], first[0].ID)
	assert.Equal(t, all[1], first[1].ID)
	assert.Equal(t, all[2], second[0].ID)
	assert.Equal(t, all[3], second[1].ID)

	// zero limit disables the cap
	zero := 0
	everything, err := svc.List(ctx, Pagination{Limit: &zero})
	require.NoError(t, err)
	assert.Len(t, everything, 5)

	// beyond the end is an empty page, not an error
	far := 100
	empty, err := svc.List(ctx, Pagination{Offset: &far})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestService_Update_Partial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, CreateInput{
		Title:  "Turbine Tee",
		Price:  decimal.NewFromInt(30),
		Gender: GenderMen,
		Images: []string{"a.jpg", "b.jpg"},
	})

	newPrice := decimal.NewFromInt(45)
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Price: &newPrice})
	require.NoError(t, err)

	assert.True(t, newPrice.Equal(updated.Price))
	assert.Equal(t, "Turbine Tee", updated.Title)
	// absent image field leaves the set untouched
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.Images)
}

func TestService_Update_ReplacesImages(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, CreateInput{
		Title:  "Let The Sun Shine Tee",
		Gender: GenderWomen,
		Images: []string{"old1.jpg", "old2.jpg"},
	})

	urls := []string{"new1.jpg"}
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Images: &urls})
	require.NoError(t, err)
	assert.Equal(t, []string{"new1.jpg"}, updated.Images)

	got, err := svc.FindOnePlain(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"new1.jpg"}, got.Images)
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	title := "x"
	_, err := svc.Update(context.Background(), id.New(), UpdateInput{Title: &title})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Update_RollsBackAtomically(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(ServiceConfig{
		Repo:      repo,
		TxManager: &memTxManager{repo: repo},
		Changes:   failingRecorder{},
	})
	ctx := context.Background()

	p := New(CreateInput{
		Title:  "Cybertruck Owl Tee",
		Gender: GenderMen,
		Images: []string{"keep1.jpg", "keep2.jpg"},
	})
	require.NoError(t, repo.Create(ctx, p))

	title := "Renamed"
	urls := []string{"gone.jpg"}
	_, err := svc.Update(ctx, p.ID, UpdateInput{Title: &title, Images: &urls})
	require.Error(t, err)

	// the failed write left both the fields and the image set untouched
	got, getErr := repo.GetByID(ctx, p.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Cybertruck Owl Tee", got.Title)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "keep1.jpg", got.Images[0].URL)
	assert.Equal(t, "keep2.jpg", got.Images[1].URL)
}

func TestService_Remove(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, CreateInput{
		Title:  "Short Lived Tee",
		Gender: GenderKid,
		Images: []string{"a.jpg"},
	})

	removed, err := svc.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	require.Len(t, removed.Images, 1)

	_, err = svc.FindOne(ctx, created.ID.String())
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.order)
}

func TestService_Remove_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Remove(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_DeleteAll(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, CreateInput{Title: "One", Gender: GenderMen})
	mustCreate(t, svc, CreateInput{Title: "Two", Gender: GenderWomen})

	require.NoError(t, svc.DeleteAll(ctx))

	plains, err := svc.List(ctx, Pagination{})
	require.NoError(t, err)
	assert.Empty(t, plains)
}

func TestService_NormalizesUnknownErrors(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, CreateInput{Title: "Tee", Gender: GenderMen})

	// simulate a raw store failure leaking past translation
	brokenRepo := &erroringRepo{memRepo: repo}
	svc.repo = brokenRepo

	_, err := svc.FindOne(ctx, created.ID.String())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInternal, appErr.Code)
}

type erroringRepo struct {
	*memRepo
}

func (r *erroringRepo) GetByID(context.Context, id.ID) (*Product, error) {
	return nil, errors.New("connection reset")
}
