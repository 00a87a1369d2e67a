package catalog

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products []models.Product
	// skipSKULookup hides existing SKUs from FindBySKU to exercise the index path.
	skipSKULookup bool
	// beforeUpdate runs inside Update to simulate a concurrent write.
	beforeUpdate func()
}

func (f *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.SKU != "" {
		for _, other := range f.products {
			if other.SKU == p.SKU {
				return database.ErrDuplicate
			}
		}
	}
	p.ID = primitive.NewObjectID()
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

// Update mirrors the repository: rating aggregates and createdAt keep their stored values.
func (f *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == p.ID {
			stored := f.products[i]
			p.Rating, p.ReviewCount, p.CreatedAt = stored.Rating, stored.ReviewCount, stored.CreatedAt
			f.products[i] = *p
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeProductRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, sku string, excludeID *primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.skipSKULookup {
		return nil, nil
	}
	for _, p := range f.products {
		if p.SKU == sku && (excludeID == nil || p.ID != *excludeID) {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) active() []models.Product {
	var out []models.Product
	for _, p := range f.products {
		if p.Status == models.ProductActive {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeProductRepo) ListActive(_ context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Product
	for _, p := range f.active() {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Search)) {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	start := len(matched)
	if skip := models.PageSkip(q.Page, q.Limit); skip < int64(start) {
		start = int(skip)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeProductRepo) ListAll(context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeProductRepo) Featured(_ context.Context, limit int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.active() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Related(_ context.Context, target *models.Product, limit int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.active() {
		if p.Category == target.Category && p.ID != target.ID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) CategoryCounts(context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range f.active() {
		counts[p.Category]++
	}
	return counts, nil
}

func (f *fakeProductRepo) UpdateRatingStats(context.Context, primitive.ObjectID, float64, int64) error {
	return nil
}

func (f *fakeProductRepo) EnsureIndexes(context.Context) error { return nil }

func init() {
	utils.Logger = zap.NewNop()
}

func strp(s string) *string { return &s }

func newService() (*DefaultCatalogService, *fakeProductRepo) {
	repo := &fakeProductRepo{}
	svc := NewCatalogService(repo, settings.Static{S: settings.DefaultSnapshot()})
	svc.Now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validInput(title, category string) ProductInput {
	price := 450000.0
	return ProductInput{
		Title:            strp(title),
		Price:            &price,
		ShortDescription: strp("Solid oak with a matte finish"),
		Description:      strp("Hand finished solid oak table that seats six comfortably."),
		MainImage:        strp("/uploads/table.jpg"),
		Category:         strp(category),
	}
}

func kindOf(err error) utils.ErrorKind {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return -1
}

func TestCreateAppliesDefaultsAndNormalizes(t *testing.T) {
	svc, _ := newService()
	in := validInput("Oak Table", "dining")
	in.SKU = strp(" dt-001 ")
	in.Tags = &[]string{" Oak ", "DINING", ""}
	in.VideoURL = strp("https://www.youtube.com/watch?v=abc123")

	p, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.SKU != "DT-001" {
		t.Errorf("SKU = %q, want DT-001", p.SKU)
	}
	if p.Currency != models.DefaultCurrency || p.Status != models.ProductActive || !p.InStock {
		t.Errorf("defaults not applied: currency=%q status=%q inStock=%v", p.Currency, p.Status, p.InStock)
	}
	if strings.Join(p.Tags, ",") != "oak,dining" {
		t.Errorf("tags = %v", p.Tags)
	}
	if p.VideoURL != "https://www.youtube.com/embed/abc123" {
		t.Errorf("video = %q", p.VideoURL)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService()
	cases := map[string]func(*ProductInput){
		"short title":   func(in *ProductInput) { in.Title = strp("A") },
		"negative":      func(in *ProductInput) { p := -1.0; in.Price = &p },
		"bad sku":       func(in *ProductInput) { in.SKU = strp("sku with spaces") },
		"bad category":  func(in *ProductInput) { in.Category = strp("garage") },
		"bad currency":  func(in *ProductInput) { in.Currency = strp("GBP") },
		"bad image":     func(in *ProductInput) { in.MainImage = strp("table.jpg") },
		"bad video":     func(in *ProductInput) { in.VideoURL = strp("https://example.com/v") },
		"short summary": func(in *ProductInput) { in.ShortDescription = strp("short") },
		"long seo":      func(in *ProductInput) { in.SEO = &models.SEO{MetaTitle: strings.Repeat("x", 61)} },
		"bad status":    func(in *ProductInput) { in.Status = strp("archived") },
	}
	for name, mutate := range cases {
		in := validInput("Oak Table", "dining")
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); kindOf(err) != utils.KindValidation {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
}

func TestDuplicateSKU(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	first := validInput("Oak Table", "dining")
	first.SKU = strp("DT-001")
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := validInput("Walnut Table", "dining")
	second.SKU = strp("dt-001")
	_, err := svc.Create(ctx, second)
	if kindOf(err) != utils.KindValidation || !strings.Contains(err.Error(), `SKU "DT-001" already exists`) {
		t.Fatalf("pre-check: err = %v", err)
	}

	repo.skipSKULookup = true
	if _, err := svc.Create(ctx, second); kindOf(err) != utils.KindValidation {
		t.Fatalf("index path: err = %v, want validation", err)
	}
}

func TestUpdateKeepsOwnSKU(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	in := validInput("Oak Table", "dining")
	in.SKU = strp("DT-001")
	p, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	price := 399000.0
	updated, err := svc.Update(ctx, p.ID.Hex(), ProductInput{SKU: strp("DT-001"), Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != price || updated.Title != "Oak Table" {
		t.Errorf("partial update lost fields: %+v", updated)
	}
	if _, err := svc.Update(ctx, p.ID.Hex(), ProductInput{Title: strp("X")}); kindOf(err) != utils.KindValidation {
		t.Errorf("invalid update: err = %v", err)
	}
}

func TestGetAndDeleteMissing(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	if _, err := svc.Get(ctx, "not-an-id"); kindOf(err) != utils.KindNotFound {
		t.Errorf("bad id: %v", err)
	}
	if _, err := svc.Get(ctx, primitive.NewObjectID().Hex()); kindOf(err) != utils.KindNotFound {
		t.Errorf("missing: %v", err)
	}
	if err := svc.Delete(ctx, primitive.NewObjectID().Hex()); kindOf(err) != utils.KindNotFound {
		t.Errorf("delete missing: %v", err)
	}
}

func TestCategoriesAndRelated(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	var dining []*models.Product
	for _, title := range []string{"Oak Table", "Walnut Table", "Bench"} {
		p, err := svc.Create(ctx, validInput(title, "dining"))
		if err != nil {
			t.Fatal(err)
		}
		dining = append(dining, p)
	}
	if _, err := svc.Create(ctx, validInput("Sofa", "living-room")); err != nil {
		t.Fatal(err)
	}
	hidden := validInput("Old Chair", "dining")
	hidden.Status = strp(models.ProductDiscontinued)
	if _, err := svc.Create(ctx, hidden); err != nil {
		t.Fatal(err)
	}

	cats, err := svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].ID != "dining" || cats[0].Count != 3 || cats[1].Name != "Living room" {
		t.Errorf("categories = %+v", cats)
	}

	related, err := svc.Related(ctx, dining[0].ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, p := range related {
		titles = append(titles, p.Title)
	}
	sort.Strings(titles)
	if strings.Join(titles, ",") != "Bench,Walnut Table" {
		t.Errorf("related = %v", titles)
	}
}

func TestListDefaultsLimit(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		if _, err := svc.Create(ctx, validInput("Chair "+string(rune('A'+i)), "office")); err != nil {
			t.Fatal(err)
		}
	}
	products, page, err := svc.List(ctx, models.ProductQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != settings.DefaultPageLimit || page.Total != 2 || page.TotalCount != 15 {
		t.Errorf("page = %+v, got %d products", page, len(products))
	}
}

func TestListClampsOversizedPaging(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, validInput("Stool "+string(rune('A'+i)), "office")); err != nil {
			t.Fatal(err)
		}
	}
	products, page, err := svc.List(ctx, models.ProductQuery{Page: 1, Limit: math.MaxInt})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 || page.Total != 1 {
		t.Errorf("huge limit: page = %+v, got %d products", page, len(products))
	}

	products, page, err = svc.List(ctx, models.ProductQuery{Page: math.MaxInt, Limit: math.MaxInt})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 0 || page.TotalCount != 3 {
		t.Errorf("huge page: page = %+v, got %d products", page, len(products))
	}
}

func TestUpdateKeepsConcurrentRatingStats(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	p, err := svc.Create(ctx, validInput("Oak Table", "dining"))
	if err != nil {
		t.Fatal(err)
	}
	// A review lands between the edit's read and its write.
	repo.beforeUpdate = func() {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		for i := range repo.products {
			if repo.products[i].ID == p.ID {
				repo.products[i].Rating, repo.products[i].ReviewCount = 4.5, 2
			}
		}
	}

	price := 399000.0
	updated, err := svc.Update(ctx, p.ID.Hex(), ProductInput{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 4.5 || updated.ReviewCount != 2 || updated.Price != price {
		t.Errorf("updated = rating %v count %d price %v", updated.Rating, updated.ReviewCount, updated.Price)
	}
}

func TestCategoryName(t *testing.T) {
	for in, want := range map[string]string{"living-room": "Living room", "decor": "Decor", "": ""} {
		if got := CategoryName(in); got != want {
			t.Errorf("CategoryName(%q) = %q, want %q", in, got, want)
		}
	}
}
