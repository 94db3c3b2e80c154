package product_test

import (
	"context"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"SmartCart-Backend/domain"
	"SmartCart-Backend/entities"
	"SmartCart-Backend/pkg/genericproduct"
	"SmartCart-Backend/pkg/product"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *entities.SpecificProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*entities.SpecificProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SpecificProduct), args.Error(1)
}

func (m *MockProductRepository) GetByBarcode(ctx context.Context, barcode string, userID string) (*entities.SpecificProduct, error) {
	args := m.Called(ctx, barcode, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SpecificProduct), args.Error(1)
}

func (m *MockProductRepository) GetByUser(ctx context.Context, userID string, page, limit int) ([]*entities.SpecificProduct, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.SpecificProduct), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetAllByUser(ctx context.Context, userID string) ([]*entities.SpecificProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SpecificProduct), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *entities.SpecificProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountListItemReferences(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

type MockGenericRepository struct {
	mock.Mock
}

func (m *MockGenericRepository) Create(ctx context.Context, p *entities.GenericProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockGenericRepository) GetByID(ctx context.Context, id string) (*entities.GenericProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GenericProduct), args.Error(1)
}

func (m *MockGenericRepository) GetForUser(ctx context.Context, userID string) ([]*entities.GenericProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GenericProduct), args.Error(1)
}

func (m *MockGenericRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Get(ctx context.Context, barcode string, userID string) (*domain.ProductInfo, bool, error) {
	args := m.Called(ctx, barcode, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ProductInfo), args.Bool(1), args.Error(2)
}

func (m *MockCacheService) Put(ctx context.Context, userID string, info *domain.ProductInfo) error {
	args := m.Called(ctx, userID, info)
	return args.Error(0)
}

func (m *MockCacheService) Invalidate(ctx context.Context, barcode string, userID string) error {
	args := m.Called(ctx, barcode, userID)
	return args.Error(0)
}

func (m *MockCacheService) Cleanup(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheService) Optimize(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockMatcherService struct {
	mock.Mock
}

func (m *MockMatcherService) FindGenericProduct(ctx context.Context, userID string, name string, category string) (*entities.GenericProduct, error) {
	args := m.Called(ctx, userID, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GenericProduct), args.Error(1)
}

func (m *MockMatcherService) SuggestGenericProducts(ctx context.Context, userID string, name string, category string) ([]genericproduct.MatchCandidate, error) {
	args := m.Called(ctx, userID, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]genericproduct.MatchCandidate), args.Error(1)
}

type MockAwsS3 struct {
	mock.Mock
}

func (m *MockAwsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	args := m.Called(fileName, file, folder, allowedTypes)
	return args.String(0), args.Error(1)
}

func (m *MockAwsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	args := m.Called(objectKey, file, allowedTypes)
	return args.String(0), args.Error(1)
}

func (m *MockAwsS3) DeleteFile(objectKey string) error {
	args := m.Called(objectKey)
	return args.Error(0)
}

func (m *MockAwsS3) GetPublicLinkKey(objectKey string) string {
	args := m.Called(objectKey)
	return args.String(0)
}

func (m *MockAwsS3) GetObjectKeyFromLink(link string) string {
	args := m.Called(link)
	return args.String(0)
}

func TestValidate_RequiredFields(t *testing.T) {
	result := product.Validate(domain.CreateSpecificProductRequest{}, "")

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors, "name is required")
	assert.Contains(t, result.Errors, "barcode is required")
	assert.Contains(t, result.Errors, "generic product id is required")
}

func TestValidate_LengthCaps(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	req := domain.CreateSpecificProductRequest{
		Name:    string(long),
		Barcode: "7891000315507",
	}

	result := product.Validate(req, uuid.New().String())

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "name exceeds 255 characters")
}

func TestValidate_WarningsDoNotBlock(t *testing.T) {
	req := domain.CreateSpecificProductRequest{
		Name:       "Leite Ninho",
		Barcode:    "12345",
		Confidence: 0.2,
		ImageURL:   "ftp://example.com/img.bmp",
	}

	result := product.Validate(req, uuid.New().String())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Warnings, 3)
}

func TestValidate_ProductQRIsNotWarned(t *testing.T) {
	req := domain.CreateSpecificProductRequest{
		Name:    "Leite Ninho",
		Barcode: "https://loja.example.com/p/7891000315507",
	}

	result := product.Validate(req, uuid.New().String())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestAutoCorrect(t *testing.T) {
	req := domain.CreateSpecificProductRequest{
		Name:    "  arroz tio joão  ",
		Brand:   "tio joão",
		Barcode: "789.1000.315507",
	}

	corrected := product.AutoCorrect(req)

	assert.Equal(t, "Arroz Tio João", corrected.Name)
	assert.Equal(t, "Tio João", corrected.Brand)
	assert.Equal(t, "7891000315507", corrected.Barcode)
}

func TestAutoCorrect_ConcurrentCalls(t *testing.T) {
	req := domain.CreateSpecificProductRequest{
		Name:    "arroz tio joão",
		Brand:   "tio joão",
		Barcode: "7891000315507",
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				corrected := product.AutoCorrect(req)
				assert.Equal(t, "Arroz Tio João", corrected.Name)
			}
		}()
	}
	wg.Wait()
}

func TestAutoCorrect_FillsUnitFromName(t *testing.T) {
	req := domain.CreateSpecificProductRequest{
		Name:    "azeite extra virgem 500 ml",
		Barcode: "7891000315507",
	}

	corrected := product.AutoCorrect(req)

	assert.Equal(t, "l", corrected.DefaultUnit)
}

func TestAutoCorrect_KeepsQRPayload(t *testing.T) {
	req := domain.CreateSpecificProductRequest{
		Name:    "Leite",
		Barcode: "https://loja.example.com/p/7891000315507",
	}

	corrected := product.AutoCorrect(req)

	assert.Equal(t, "https://loja.example.com/p/7891000315507", corrected.Barcode)
}

func newService() (*MockProductRepository, *MockGenericRepository, *MockCacheService, *MockAwsS3, product.ProductService, *MockMatcherService) {
	productRepo := new(MockProductRepository)
	genericRepo := new(MockGenericRepository)
	cache := new(MockCacheService)
	s3 := new(MockAwsS3)
	matcher := new(MockMatcherService)
	svc := product.NewProductService(productRepo, genericRepo, matcher, cache, s3)
	return productRepo, genericRepo, cache, s3, svc, matcher
}

func TestCreateWithValidation_Success(t *testing.T) {
	productRepo, _, cache, _, svc, _ := newService()

	userID := uuid.New().String()
	genericID := uuid.New().String()
	req := domain.CreateSpecificProductRequest{
		Name:             "Leite Ninho Integral",
		Brand:            "Ninho",
		Barcode:          "7891000315507",
		GenericProductID: genericID,
		ExternalID:       "7891000315507",
	}

	productRepo.On("GetByBarcode", mock.Anything, "7891000315507", userID).Return(nil, gorm.ErrRecordNotFound)
	productRepo.On("GetAllByUser", mock.Anything, userID).Return([]*entities.SpecificProduct{}, nil)
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.SpecificProduct) bool {
		return p.Barcode == "7891000315507" &&
			p.BarcodeFormat == domain.FormatEAN13 &&
			p.DataSource == domain.SourceManual &&
			p.ExternalID == "7891000315507" &&
			p.Confidence == 1.0
	})).Return(nil)
	cache.On("Put", mock.Anything, userID, mock.MatchedBy(func(info *domain.ProductInfo) bool {
		return info.Source == domain.SourceLocal && info.Confidence == 1.0
	})).Return(nil)

	response, err := svc.CreateWithValidation(context.Background(), req, userID)

	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "Leite Ninho Integral", response.Product.Name)
	assert.Equal(t, "7891000315507", response.Product.ExternalID)
	productRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateWithValidation_MissingFieldsFail(t *testing.T) {
	_, _, _, _, svc, _ := newService()

	userID := uuid.New().String()
	req := domain.CreateSpecificProductRequest{
		GenericProductID: uuid.New().String(),
	}

	response, err := svc.CreateWithValidation(context.Background(), req, userID)

	assert.NoError(t, err)
	assert.False(t, response.Success)
	assert.Contains(t, response.Errors, "name is required")
	assert.Contains(t, response.Errors, "barcode is required")
}

func TestCreateWithValidation_InvalidRequestCreatesNoGeneric(t *testing.T) {
	_, genericRepo, _, _, svc, _ := newService()

	userID := uuid.New().String()
	req := domain.CreateSpecificProductRequest{Name: "Arroz Tio João"}

	response, err := svc.CreateWithValidation(context.Background(), req, userID)

	assert.NoError(t, err)
	assert.False(t, response.Success)
	assert.Contains(t, response.Errors, "barcode is required")
	genericRepo.AssertNotCalled(t, "GetForUser", mock.Anything, mock.Anything)
	genericRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateWithValidation_DuplicateBarcodeBlocks(t *testing.T) {
	productRepo, _, _, _, svc, _ := newService()

	userID := uuid.New().String()
	existing := &entities.SpecificProduct{
		ID:      uuid.New(),
		Barcode: "7891000315507",
		Name:    "Leite Ninho",
	}
	req := domain.CreateSpecificProductRequest{
		Name:             "Leite Ninho Integral",
		Barcode:          "7891000315507",
		GenericProductID: uuid.New().String(),
	}

	productRepo.On("GetByBarcode", mock.Anything, "7891000315507", userID).Return(existing, nil)

	response, err := svc.CreateWithValidation(context.Background(), req, userID)

	assert.NoError(t, err)
	assert.False(t, response.Success)
	assert.Contains(t, response.Errors, "duplicate product (barcode)")
}

func TestCreateWithValidation_SkipDuplicatesBypassesCheck(t *testing.T) {
	productRepo, _, cache, _, svc, _ := newService()

	userID := uuid.New().String()
	req := domain.CreateSpecificProductRequest{
		Name:             "Leite Ninho Integral",
		Barcode:          "7891000315507",
		GenericProductID: uuid.New().String(),
		SkipDuplicates:   true,
	}

	productRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("Put", mock.Anything, userID, mock.Anything).Return(nil)

	response, err := svc.CreateWithValidation(context.Background(), req, userID)

	assert.NoError(t, err)
	assert.True(t, response.Success)
	productRepo.AssertNotCalled(t, "GetByBarcode")
}

func TestCreateWithValidation_AutoCreatesGeneric(t *testing.T) {
	productRepo, genericRepo, cache, _, svc, _ := newService()

	userID := uuid.New().String()
	req := domain.CreateSpecificProductRequest{
		Name:    "Quinoa Real em Grãos 500g",
		Barcode: "7898432134560",
	}

	// Nothing in the pantry scores above the link threshold.
	genericRepo.On("GetForUser", mock.Anything, userID).Return([]*entities.GenericProduct{}, nil)
	genericRepo.On("Create", mock.Anything, mock.MatchedBy(func(g *entities.GenericProduct) bool {
		return g.Name == "Quinoa"
	})).Return(nil)
	productRepo.On("GetByBarcode", mock.Anything, "7898432134560", userID).Return(nil, gorm.ErrRecordNotFound)
	productRepo.On("GetAllByUser", mock.Anything, userID).Return([]*entities.SpecificProduct{}, nil)
	productRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("Put", mock.Anything, userID, mock.Anything).Return(nil)

	response, err := svc.CreateWithValidation(context.Background(), req, userID)

	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.Warnings)
	genericRepo.AssertExpectations(t)
}

func TestCheckForDuplicates_NameSimilarity(t *testing.T) {
	productRepo, _, _, _, svc, _ := newService()

	userID := uuid.New().String()
	existing := &entities.SpecificProduct{
		ID:   uuid.New(),
		Name: "Leite Ninho Integral",
	}

	productRepo.On("GetByBarcode", mock.Anything, "4006381333931", userID).Return(nil, gorm.ErrRecordNotFound)
	productRepo.On("GetAllByUser", mock.Anything, userID).Return([]*entities.SpecificProduct{existing}, nil)

	result, err := svc.CheckForDuplicates(context.Background(), "4006381333931", "Leite Ninho Integrall", userID)

	assert.NoError(t, err)
	assert.True(t, result.HasDuplicate)
	assert.Equal(t, "name", result.DuplicateType)
}

func TestCheckForDuplicates_NoDuplicate(t *testing.T) {
	productRepo, _, _, _, svc, _ := newService()

	userID := uuid.New().String()
	productRepo.On("GetByBarcode", mock.Anything, "4006381333931", userID).Return(nil, gorm.ErrRecordNotFound)
	productRepo.On("GetAllByUser", mock.Anything, userID).Return([]*entities.SpecificProduct{
		{ID: uuid.New(), Name: "Detergente Ypê"},
	}, nil)

	result, err := svc.CheckForDuplicates(context.Background(), "4006381333931", "Leite Ninho", userID)

	assert.NoError(t, err)
	assert.False(t, result.HasDuplicate)
}

func TestAutoLink_NameSubstringWins(t *testing.T) {
	_, genericRepo, _, _, svc, _ := newService()

	userID := uuid.New().String()
	arroz := &entities.GenericProduct{ID: uuid.New(), Name: "Arroz", Category: "graos", IsDefault: true}
	feijao := &entities.GenericProduct{ID: uuid.New(), Name: "Feijão", Category: "graos", IsDefault: true}
	genericRepo.On("GetForUser", mock.Anything, userID).Return([]*entities.GenericProduct{arroz, feijao}, nil)

	generic, score, err := svc.AutoLinkToGenericProduct(context.Background(), userID, "Arroz Tio João Tipo 1", "")

	assert.NoError(t, err)
	assert.Equal(t, "Arroz", generic.Name)
	// substring (100) + shared word (30) + default bonus (10)
	assert.Equal(t, 140, score)
}

func TestAutoLink_BelowThreshold(t *testing.T) {
	_, genericRepo, _, _, svc, _ := newService()

	userID := uuid.New().String()
	genericRepo.On("GetForUser", mock.Anything, userID).Return([]*entities.GenericProduct{
		{ID: uuid.New(), Name: "Arroz", Category: "graos", IsDefault: true},
	}, nil)

	generic, score, err := svc.AutoLinkToGenericProduct(context.Background(), userID, "Parafuso Sextavado", "Ferramentas")

	assert.ErrorIs(t, err, domain.ErrNoGenericMatch)
	assert.Nil(t, generic)
	assert.Less(t, score, 50)
}

func TestDeleteProduct_BlockedWhileReferenced(t *testing.T) {
	productRepo, _, _, _, svc, _ := newService()

	userID := uuid.New()
	productID := uuid.New().String()
	productRepo.On("GetByID", mock.Anything, productID).Return(&entities.SpecificProduct{
		ID:     uuid.MustParse(productID),
		UserID: userID,
	}, nil)
	productRepo.On("CountListItemReferences", mock.Anything, productID).Return(int64(2), nil)

	err := svc.DeleteProduct(context.Background(), productID, userID.String())

	assert.ErrorIs(t, err, domain.ErrProductReferenced)
	productRepo.AssertNotCalled(t, "Delete")
}

func TestDeleteProduct_OwnershipEnforced(t *testing.T) {
	productRepo, _, _, _, svc, _ := newService()

	productID := uuid.New().String()
	productRepo.On("GetByID", mock.Anything, productID).Return(&entities.SpecificProduct{
		ID:     uuid.MustParse(productID),
		UserID: uuid.New(),
	}, nil)

	err := svc.DeleteProduct(context.Background(), productID, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestDeleteProduct_InvalidatesCache(t *testing.T) {
	productRepo, _, cache, _, svc, _ := newService()

	userID := uuid.New()
	productID := uuid.New().String()
	productRepo.On("GetByID", mock.Anything, productID).Return(&entities.SpecificProduct{
		ID:      uuid.MustParse(productID),
		UserID:  userID,
		Barcode: "7891000315507",
	}, nil)
	productRepo.On("CountListItemReferences", mock.Anything, productID).Return(int64(0), nil)
	productRepo.On("Delete", mock.Anything, productID).Return(nil)
	cache.On("Invalidate", mock.Anything, "7891000315507", userID.String()).Return(nil)

	err := svc.DeleteProduct(context.Background(), productID, userID.String())

	assert.NoError(t, err)
	cache.AssertExpectations(t)
}
