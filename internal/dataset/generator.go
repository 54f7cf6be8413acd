package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/models"
)

var (
	vendorPrefixes = []string{"Grupo", "Constructora", "Comercializadora", "Servicios", "Distribuidora", "Corporativo", "Ingeniería"}
	vendorCores    = []string{"Norte", "Pacífico", "Central", "Golfo", "Azteca", "Continental", "Meridional", "Delta"}
	vendorSuffixes = []string{"SA de CV", "S de RL", "y Asociados", "Internacional", "SAPI"}

	institutionNames = []string{
		"Secretaría de Salud", "Secretaría de Educación", "Instituto de Seguridad Social",
		"Comisión de Electricidad", "Secretaría de Infraestructura", "Instituto Electoral",
		"Secretaría de Agricultura", "Comisión de Agua", "Secretaría de Cultura",
		"Instituto de Vivienda", "Secretaría de Transporte", "Consejo de Ciencia",
	}

	sectorIDs = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
)

func round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// riskLevelFor buckets a score the way the real backend's model does.
func riskLevelFor(score float64) domain.RiskLevel {
	switch {
	case score < 0.25:
		return domain.RiskLow
	case score < 0.5:
		return domain.RiskMedium
	case score < 0.75:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// Generate builds a deterministic synthetic dataset: n vendors, a fixed
// roster of institutions and four years of monthly trend points. Seed 0
// means "pick one from entropy".
func Generate(seed int64, n int) *Store {
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	pick := func(xs []string) string { return xs[rng.Intn(len(xs))] }

	vendors := make([]models.Vendor, 0, n)
	for i := 0; i < n; i++ {
		score := round(rng.Float64(), 3)
		contracts := rng.Intn(200) + 1
		vendors = append(vendors, models.Vendor{
			VendorID:       uuid.NewString(),
			Name:           fmt.Sprintf("%s %s %s", pick(vendorPrefixes), pick(vendorCores), pick(vendorSuffixes)),
			SectorID:       sectorIDs[rng.Intn(len(sectorIDs))],
			TotalContracts: contracts,
			TotalAmount:    round(float64(contracts)*(50_000+rng.Float64()*950_000), 2),
			RiskScore:      score,
			RiskLevel:      riskLevelFor(score).String(),
		})
	}

	institutions := make([]models.Institution, 0, len(institutionNames))
	for _, name := range institutionNames {
		score := round(rng.Float64(), 3)
		contracts := rng.Intn(2000) + 50
		institutions = append(institutions, models.Institution{
			InstitutionID:  uuid.NewString(),
			Name:           name,
			SectorID:       sectorIDs[rng.Intn(len(sectorIDs))],
			TotalContracts: contracts,
			TotalAmount:    round(float64(contracts)*(100_000+rng.Float64()*2_000_000), 2),
			RiskScore:      score,
			RiskLevel:      riskLevelFor(score).String(),
		})
	}

	trends := make([]models.TrendPoint, 0, 48)
	for year := 2022; year <= 2025; year++ {
		for month := 1; month <= 12; month++ {
			count := rng.Intn(900) + 100
			trends = append(trends, models.TrendPoint{
				Period:        fmt.Sprintf("%04d-%02d", year, month),
				ContractCount: count,
				TotalAmount:   round(float64(count)*(80_000+rng.Float64()*400_000), 2),
				AvgRiskScore:  round(rng.Float64(), 3),
			})
		}
	}

	return &Store{vendors: vendors, institutions: institutions, trends: trends}
}
