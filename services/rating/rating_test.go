package rating

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []models.ProductRating
	// skipLookup hides existing ratings from FindByClient to simulate a lost race.
	skipLookup bool
	failReads  bool
}

func (f *fakeRatingRepo) Create(_ context.Context, r *models.ProductRating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.ratings {
		if other.ProductID == r.ProductID && other.ClientIP == r.ClientIP {
			return database.ErrDuplicate
		}
	}
	r.ID = primitive.NewObjectID()
	f.ratings = append(f.ratings, *r)
	return nil
}

func (f *fakeRatingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.ProductRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.ratings {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeRatingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.ratings {
		if r.ID == id {
			f.ratings = append(f.ratings[:i], f.ratings[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeRatingRepo) FindByClient(_ context.Context, productID primitive.ObjectID, clientIP string) (*models.ProductRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skipLookup {
		return nil, nil
	}
	for _, r := range f.ratings {
		if r.ProductID == productID && r.ClientIP == clientIP {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) Summary(_ context.Context, productID primitive.ObjectID) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return 0, 0, errors.New("connection reset")
	}
	var sum, n int64
	for _, r := range f.ratings {
		if r.ProductID == productID {
			sum += int64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

func (f *fakeRatingRepo) Distribution(_ context.Context, productID primitive.ObjectID) ([]models.RatingBucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errors.New("connection reset")
	}
	counts := map[int]int64{}
	for _, r := range f.ratings {
		if r.ProductID == productID {
			counts[r.Rating]++
		}
	}
	var out []models.RatingBucket
	for rating, count := range counts {
		out = append(out, models.RatingBucket{Rating: rating, Count: count})
	}
	return out, nil
}

func (f *fakeRatingRepo) Recent(_ context.Context, productID primitive.ObjectID, limit int) ([]models.ProductRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errors.New("connection reset")
	}
	var out []models.ProductRating
	for i := len(f.ratings) - 1; i >= 0 && len(out) < limit; i-- {
		if f.ratings[i].ProductID == productID {
			out = append(out, f.ratings[i])
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) EnsureIndexes(context.Context) error { return nil }

type fakeProducts struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) UpdateRatingStats(_ context.Context, id primitive.ObjectID, average float64, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return database.ErrNotFound
	}
	p.Rating, p.ReviewCount = average, count
	return nil
}

func init() {
	utils.Logger = zap.NewNop()
}

func setup() (*DefaultRatingService, *fakeRatingRepo, *fakeProducts, primitive.ObjectID) {
	id := primitive.NewObjectID()
	products := &fakeProducts{products: map[primitive.ObjectID]*models.Product{
		id: {ID: id, Title: "Oak Dining Table"},
	}}
	repo := &fakeRatingRepo{}
	svc := NewRatingService(repo, products)
	svc.Now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	return svc, repo, products, id
}

func kindOf(err error) utils.ErrorKind {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return -1
}

func TestSubmitThenDuplicateConflicts(t *testing.T) {
	svc, _, _, pid := setup()
	ctx := context.Background()
	in := SubmitInput{ProductID: pid.Hex(), Rating: 5, ClientID: "203.0.113.7"}

	if _, err := svc.Submit(ctx, in); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	_, err := svc.Submit(ctx, in)
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != utils.KindConflict {
		t.Fatalf("second rating: %v, want conflict", err)
	}
	existing, ok := appErr.Payload["existingRating"]
	if !ok || existing == nil {
		t.Errorf("conflict should carry the existing rating, payload=%v", appErr.Payload)
	}
}

func TestSubmitRaceMapsDuplicateKey(t *testing.T) {
	svc, repo, _, pid := setup()
	ctx := context.Background()
	in := SubmitInput{ProductID: pid.Hex(), Rating: 3, ClientID: "198.51.100.2"}
	if _, err := svc.Submit(ctx, in); err != nil {
		t.Fatal(err)
	}
	repo.skipLookup = true
	if _, err := svc.Submit(ctx, in); kindOf(err) != utils.KindConflict {
		t.Fatalf("duplicate insert: %v, want conflict", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _, pid := setup()
	ctx := context.Background()
	cases := []struct {
		name string
		in   SubmitInput
		want utils.ErrorKind
	}{
		{"bad id", SubmitInput{ProductID: "xyz", Rating: 4}, utils.KindValidation},
		{"zero", SubmitInput{ProductID: pid.Hex(), Rating: 0}, utils.KindValidation},
		{"six", SubmitInput{ProductID: pid.Hex(), Rating: 6}, utils.KindValidation},
		{"fraction", SubmitInput{ProductID: pid.Hex(), Rating: 4.5}, utils.KindValidation},
		{"unknown product", SubmitInput{ProductID: primitive.NewObjectID().Hex(), Rating: 4}, utils.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(ctx, tc.in); kindOf(err) != tc.want {
				t.Errorf("got %v, want kind %v", err, tc.want)
			}
		})
	}
}

func TestSummaryRoundsAndRefreshesProduct(t *testing.T) {
	svc, _, products, pid := setup()
	ctx := context.Background()
	for i, r := range []float64{4, 5, 5} {
		in := SubmitInput{ProductID: pid.Hex(), Rating: r, ClientID: string(rune('a' + i))}
		if _, err := svc.Submit(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	summary := svc.Summary(ctx, pid.Hex())
	if summary.AverageRating != 4.7 || summary.TotalRatings != 3 {
		t.Errorf("summary = %+v, want {4.7 3}", summary)
	}
	p := products.products[pid]
	if p.Rating != 4.7 || p.ReviewCount != 3 {
		t.Errorf("product aggregates = %v/%d", p.Rating, p.ReviewCount)
	}
}

func TestSummaryNeverFails(t *testing.T) {
	svc, repo, _, pid := setup()
	ctx := context.Background()

	if got := svc.Summary(ctx, pid.Hex()); got != (models.RatingSummary{}) {
		t.Errorf("no ratings: %+v", got)
	}
	if got := svc.Summary(ctx, "garbage"); got != (models.RatingSummary{}) {
		t.Errorf("invalid id: %+v", got)
	}
	repo.failReads = true
	if got := svc.Summary(ctx, pid.Hex()); got != (models.RatingSummary{}) {
		t.Errorf("store failure: %+v", got)
	}
	dist := svc.Distribution(ctx, pid.Hex())
	if len(dist) != 5 {
		t.Errorf("distribution on failure = %v", dist)
	}
}

func TestDistributionFillsMissingBuckets(t *testing.T) {
	svc, _, _, pid := setup()
	ctx := context.Background()
	for i, r := range []float64{5, 5, 2} {
		if _, err := svc.Submit(ctx, SubmitInput{ProductID: pid.Hex(), Rating: r, ClientID: string(rune('k' + i))}); err != nil {
			t.Fatal(err)
		}
	}
	dist := svc.Distribution(ctx, pid.Hex())
	want := map[int]int64{1: 0, 2: 1, 3: 0, 4: 0, 5: 2}
	for k, v := range want {
		if dist[k] != v {
			t.Errorf("bucket %d = %d, want %d", k, dist[k], v)
		}
	}
}

func TestDetailsAndStats(t *testing.T) {
	svc, repo, _, pid := setup()
	ctx := context.Background()

	if _, err := svc.Details(ctx, primitive.NewObjectID().Hex()); kindOf(err) != utils.KindNotFound {
		t.Errorf("details of missing product: %v", err)
	}
	if _, err := svc.Details(ctx, "nope"); kindOf(err) != utils.KindValidation {
		t.Errorf("details with bad id: %v", err)
	}

	for i, r := range []float64{4, 2} {
		if _, err := svc.Submit(ctx, SubmitInput{ProductID: pid.Hex(), Rating: r, ClientID: string(rune('p' + i))}); err != nil {
			t.Fatal(err)
		}
	}
	d, err := svc.Details(ctx, pid.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if d.ProductTitle != "Oak Dining Table" || d.TotalRatings != 2 || d.AverageRating != 3 || len(d.RecentRatings) != 2 {
		t.Errorf("details = %+v", d)
	}

	st, err := svc.Stats(ctx, pid.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if st.RatingDistribution[4].Percentage != 50 || st.RatingBreakdown[2] != 50 || st.RatingBreakdown[5] != 0 {
		t.Errorf("stats = %+v", st)
	}

	repo.failReads = true
	d, err = svc.Details(ctx, pid.Hex())
	if err != nil {
		t.Fatalf("details must degrade, got %v", err)
	}
	if d.TotalRatings != 0 || len(d.RatingDistribution) != 5 {
		t.Errorf("degraded details = %+v", d)
	}
}

func TestDeleteRefreshesAggregates(t *testing.T) {
	svc, _, products, pid := setup()
	ctx := context.Background()
	r, err := svc.Submit(ctx, SubmitInput{ProductID: pid.Hex(), Rating: 1, ClientID: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, r.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if p := products.products[pid]; p.ReviewCount != 0 || p.Rating != 0 {
		t.Errorf("aggregates after delete = %v/%d", p.Rating, p.ReviewCount)
	}
	if err := svc.Delete(ctx, r.ID.Hex()); kindOf(err) != utils.KindNotFound {
		t.Errorf("second delete: %v", err)
	}
}

func TestConcurrentSubmitsKeepOneRating(t *testing.T) {
	svc, repo, _, pid := setup()
	ctx := context.Background()
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, SubmitInput{ProductID: pid.Hex(), Rating: 4, ClientID: "10.0.0.1"})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if kindOf(err) != utils.KindConflict {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if ok != 1 || len(repo.ratings) != 1 {
		t.Fatalf("successes=%d stored=%d, want 1/1", ok, len(repo.ratings))
	}
}
