package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockCategoryRepo struct {
	categories map[uuid.UUID]*Category
	creates    int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*Category)}
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (*Category, error) {
	for _, c := range m.categories {
		if FoldName(c.Name) == FoldName(name) {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockCategoryRepo) Create(_ context.Context, c *Category) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	m.categories[c.ID] = c
	m.creates++
	return nil
}

func (m *mockCategoryRepo) List(_ context.Context, limit, offset int) ([]*Category, int, error) {
	var result []*Category
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, len(result), nil
}

type mockMedicineRepo struct {
	medicines map[uuid.UUID]*Medicine
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{medicines: make(map[uuid.UUID]*Medicine)}
}

func (m *mockMedicineRepo) Create(_ context.Context, med *Medicine, categoryIDs []uuid.UUID) error {
	med.ID = uuid.New()
	med.CreatedAt = time.Now()
	for _, id := range categoryIDs {
		med.Categories = append(med.Categories, Category{ID: id})
	}
	m.medicines[med.ID] = med
	return nil
}

func (m *mockMedicineRepo) GetByID(_ context.Context, id uuid.UUID) (*Medicine, error) {
	med, ok := m.medicines[id]
	if !ok {
		return nil, ErrNotFound
	}
	return med, nil
}

func (m *mockMedicineRepo) FindByFields(_ context.Context, ident Identity) ([]*Medicine, error) {
	var result []*Medicine
	for _, med := range m.medicines {
		if med.GenericName == ident.GenericName &&
			med.BrandName == ident.BrandName &&
			med.DosageForm == ident.DosageForm &&
			med.DosageStrength == ident.DosageStrength &&
			med.Classification == ident.Classification &&
			med.Description == ident.Description {
			result = append(result, med)
		}
	}
	return result, nil
}

func (m *mockMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.medicines[id]; !ok {
		return ErrNotFound
	}
	delete(m.medicines, id)
	return nil
}

func newTestService() (*Service, *mockCategoryRepo, *mockMedicineRepo) {
	cats := newMockCategoryRepo()
	meds := newMockMedicineRepo()
	return NewService(cats, meds), cats, meds
}

// -- Category Registry --

func TestResolveOrCreateCategories_CreatesOnFirstUse(t *testing.T) {
	svc, cats, _ := newTestService()

	result, err := svc.ResolveOrCreateCategories(context.Background(), "Pain Relief / Antipyretic")
	if err != nil {
		t.Fatalf("ResolveOrCreateCategories() error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(result))
	}
	if result[0].Name != "Pain Relief" || result[1].Name != "Antipyretic" {
		t.Errorf("unexpected names: %s, %s", result[0].Name, result[1].Name)
	}
	if cats.creates != 2 {
		t.Errorf("expected 2 creates, got %d", cats.creates)
	}
}

func TestResolveOrCreateCategories_CaseInsensitiveReuse(t *testing.T) {
	svc, cats, _ := newTestService()
	ctx := context.Background()

	first, err := svc.ResolveOrCreateCategories(ctx, "Antibiotics")
	if err != nil {
		t.Fatalf("first resolve error: %v", err)
	}
	second, err := svc.ResolveOrCreateCategories(ctx, "ANTIBIOTICS ")
	if err != nil {
		t.Fatalf("second resolve error: %v", err)
	}

	if first[0].ID != second[0].ID {
		t.Error("expected both submissions to resolve to the same category id")
	}
	if cats.creates != 1 {
		t.Errorf("expected exactly 1 category created, got %d", cats.creates)
	}
}

func TestResolveOrCreateCategories_EmptyInput(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.ResolveOrCreateCategories(context.Background(), "  / /"); err == nil {
		t.Fatal("expected error for input with no category pieces")
	}
}

// -- Medicine Identity Resolver --

func testIdentity(categoryIDs ...uuid.UUID) Identity {
	return Identity{
		GenericName:    "Paracetamol",
		BrandName:      "Biogesic",
		DosageForm:     "Tablet",
		DosageStrength: "500mg",
		Classification: "OTC",
		Description:    "fever reducer",
		CategoryIDs:    categoryIDs,
	}
}

func TestFindOrCreateMedicine_ReusesIdenticalIdentity(t *testing.T) {
	svc, _, meds := newTestService()
	ctx := context.Background()
	catA, catB := uuid.New(), uuid.New()

	first, err := svc.FindOrCreateMedicine(ctx, testIdentity(catA, catB))
	if err != nil {
		t.Fatalf("first FindOrCreateMedicine() error: %v", err)
	}

	// Same category set in a different order must resolve to the same record.
	second, err := svc.FindOrCreateMedicine(ctx, testIdentity(catB, catA))
	if err != nil {
		t.Fatalf("second FindOrCreateMedicine() error: %v", err)
	}

	if first.ID != second.ID {
		t.Error("expected identical identities to reuse the same medicine")
	}
	if len(meds.medicines) != 1 {
		t.Errorf("expected 1 medicine record, got %d", len(meds.medicines))
	}
}

func TestFindOrCreateMedicine_PartialCategoryOverlapIsNewIdentity(t *testing.T) {
	svc, _, meds := newTestService()
	ctx := context.Background()
	catA, catB, catC := uuid.New(), uuid.New(), uuid.New()

	first, err := svc.FindOrCreateMedicine(ctx, testIdentity(catA, catB))
	if err != nil {
		t.Fatalf("first FindOrCreateMedicine() error: %v", err)
	}
	second, err := svc.FindOrCreateMedicine(ctx, testIdentity(catA, catB, catC))
	if err != nil {
		t.Fatalf("second FindOrCreateMedicine() error: %v", err)
	}

	if first.ID == second.ID {
		t.Error("expected {A,B} and {A,B,C} to be distinct identities")
	}
	if len(meds.medicines) != 2 {
		t.Errorf("expected 2 medicine records, got %d", len(meds.medicines))
	}
}

func TestFindOrCreateMedicine_DifferentFieldIsNewIdentity(t *testing.T) {
	svc, _, meds := newTestService()
	ctx := context.Background()
	cat := uuid.New()

	if _, err := svc.FindOrCreateMedicine(ctx, testIdentity(cat)); err != nil {
		t.Fatalf("first FindOrCreateMedicine() error: %v", err)
	}

	other := testIdentity(cat)
	other.DosageStrength = "250mg"
	if _, err := svc.FindOrCreateMedicine(ctx, other); err != nil {
		t.Fatalf("second FindOrCreateMedicine() error: %v", err)
	}

	if len(meds.medicines) != 2 {
		t.Errorf("expected 2 medicine records, got %d", len(meds.medicines))
	}
}

func TestFindOrCreateMedicine_DuplicateCategoryIDsCollapse(t *testing.T) {
	svc, _, meds := newTestService()
	ctx := context.Background()
	cat := uuid.New()

	first, err := svc.FindOrCreateMedicine(ctx, testIdentity(cat, cat))
	if err != nil {
		t.Fatalf("first FindOrCreateMedicine() error: %v", err)
	}
	second, err := svc.FindOrCreateMedicine(ctx, testIdentity(cat))
	if err != nil {
		t.Fatalf("second FindOrCreateMedicine() error: %v", err)
	}

	if first.ID != second.ID {
		t.Error("expected duplicate category ids to collapse to the same set")
	}
	if len(meds.medicines) != 1 {
		t.Errorf("expected 1 medicine record, got %d", len(meds.medicines))
	}
}

func TestFindOrCreateMedicine_RequiresGenericName(t *testing.T) {
	svc, _, _ := newTestService()
	ident := testIdentity(uuid.New())
	ident.GenericName = ""
	if _, err := svc.FindOrCreateMedicine(context.Background(), ident); err == nil {
		t.Fatal("expected error for missing generic name")
	}
}
