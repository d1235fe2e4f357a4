// internal/tea/seed.go
package tea

import (
	"time"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func brew(temperature int, grams float64, seconds, steeps int) BrewingParams {
	return BrewingParams{Temperature: ptr(temperature), Grams: ptr(grams), Time: ptr(seconds), Steeps: ptr(steeps)}
}

// SeedTeas returns the demo collection. Each call assigns fresh ids.
func SeedTeas() []Tea {
	teas := []Tea{
		{
			Name: "Earl Grey Supreme", Type: Black, Supplier: "Harney & Sons", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.March, 15)), Rating: 9,
			TastingNotes: TastingNotes{
				DryLeaf: "Fragrant bergamot oil with cornflower petals, classic Earl Grey aroma",
				WetLeaf: "Strong bergamot with hints of vanilla and citrus zest",
				Taste:   "Bold black tea base with bright bergamot, smooth finish with subtle floral notes",
			},
			SupplierDescription: "Premium Ceylon black tea blended with oil of bergamot and cornflower petals. A refined take on the classic Earl Grey.",
			BrewingParams:       brew(212, 2.5, 300, 1),
			HarvestSeason:       Spring, HarvestYear: ptr(2023),
			CreatedAt: day(2024, time.March, 16), UpdatedAt: day(2024, time.March, 16),
		},
		{
			Name: "Dragon Well (Longjing)", Type: Green, Supplier: "Rishi Tea", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.March, 20)), Rating: 8,
			TastingNotes: TastingNotes{
				DryLeaf: "Flat, sword-shaped leaves with fresh vegetal aroma",
				WetLeaf: "Sweet grass and light nutty fragrance",
				Taste:   "Delicate, sweet with gentle astringency. Notes of fresh grass and toasted nuts",
			},
			SupplierDescription: "Authentic Dragon Well green tea from the hills of Hangzhou. Hand-picked and pan-fired for a sweet, mellow flavor.",
			BrewingParams:       brew(175, 3, 180, 3),
			HarvestSeason:       EarlySpring, HarvestYear: ptr(2024),
			CreatedAt: day(2024, time.March, 21), UpdatedAt: day(2024, time.March, 21),
		},
		{
			Name: "Chamomile Dreams", Type: Herbal, Supplier: "Celestial Seasonings", InStock: false,
			PurchaseDate: ptr(NewDate(2024, time.February, 10)), Rating: 7,
			TastingNotes: TastingNotes{
				DryLeaf: "Sweet honey-like aroma with dried chamomile flowers",
				WetLeaf: "Apple-like fragrance with floral honey notes",
				Taste:   "Soothing and sweet, honey-like with mild apple undertones. Very calming",
			},
			SupplierDescription: "Pure chamomile flowers carefully dried to preserve their natural oils. Perfect for evening relaxation.",
			BrewingParams:       brew(212, 1.5, 360, 1),
			CreatedAt:           day(2024, time.February, 11), UpdatedAt: day(2024, time.March, 10),
		},
		{
			Name: "Ti Kuan Yin Oolong", Type: Oolong, Supplier: "The Tea Spot", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.March, 25)), Rating: 10,
			TastingNotes: TastingNotes{
				DryLeaf: "Tightly rolled balls with floral, orchid-like fragrance",
				WetLeaf: "Complex floral bouquet with hints of stone fruit",
				Taste:   "Incredibly smooth and complex. Floral with peachy undertones, long sweet finish",
			},
			SupplierDescription: "Premium Iron Goddess oolong from Fujian province. Traditional processing creates exceptional depth and complexity.",
			BrewingParams:       brew(195, 2, 120, 6),
			HarvestSeason:       Fall, HarvestYear: ptr(2023),
			CreatedAt: day(2024, time.March, 26), UpdatedAt: day(2024, time.March, 26),
		},
		{
			Name: "English Breakfast", Type: Black, Supplier: "Twinings", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.January, 30)), Rating: 6,
			TastingNotes: TastingNotes{
				DryLeaf: "Rich, malty aroma typical of breakfast blends",
				WetLeaf: "Strong and robust with hints of caramel",
				Taste:   "Full-bodied and malty, takes milk well. Somewhat one-dimensional but reliable",
			},
			SupplierDescription: "Traditional English Breakfast blend of Ceylon, Assam, and Kenyan black teas. Perfect with milk and sugar.",
			BrewingParams:       brew(212, 2, 240, 1),
			CreatedAt:           day(2024, time.January, 31), UpdatedAt: day(2024, time.March, 15),
		},
		{
			Name: "Silver Needle (Bai Hao Yin Zhen)", Type: White, Supplier: "Rishi Tea", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.March, 10)), Rating: 9,
			TastingNotes: TastingNotes{
				DryLeaf: "Beautiful silver-white buds with subtle sweet aroma",
				WetLeaf: "Delicate honeyed fragrance with light floral notes",
				Taste:   "Extraordinarily delicate and sweet. Light body with honey and melon notes",
			},
			SupplierDescription: "Rare white tea made only from silver buds. Hand-picked during a brief window in early spring.",
			BrewingParams:       brew(185, 3, 240, 4),
			HarvestSeason:       EarlySpring, HarvestYear: ptr(2024),
			CreatedAt: day(2024, time.March, 11), UpdatedAt: day(2024, time.March, 11),
		},
		{
			Name: "Chocolate Mint Rooibos", Type: Rooibos, Supplier: "David's Tea", InStock: false,
			PurchaseDate: ptr(NewDate(2024, time.February, 20)), Rating: 5,
			TastingNotes: TastingNotes{
				DryLeaf: "Sweet chocolate and mint blend with red rooibos",
				WetLeaf: "Strong peppermint with artificial chocolate scent",
				Taste:   "Very minty, chocolate flavor is artificial tasting. Too sweet overall",
			},
			SupplierDescription: "South African red bush tea blended with chocolate pieces and peppermint. Naturally caffeine-free.",
			BrewingParams:       brew(212, 2, 300, 1),
			CreatedAt:           day(2024, time.February, 21), UpdatedAt: day(2024, time.March, 5),
		},
		{
			Name: "Jasmine Phoenix Pearls", Type: Green, Supplier: "Harney & Sons", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.March, 28)), Rating: 8,
			TastingNotes: TastingNotes{
				DryLeaf: "Hand-rolled pearls with intense jasmine fragrance",
				WetLeaf: "Intoxicating jasmine aroma with green tea base",
				Taste:   "Beautiful balance of jasmine flowers and green tea. Floral without being overwhelming",
			},
			SupplierDescription: "Premium green tea pearls scented with fresh jasmine flowers using traditional methods.",
			BrewingParams:       brew(175, 2, 150, 3),
			HarvestSeason:       Spring, HarvestYear: ptr(2023),
			CreatedAt: day(2024, time.March, 29), UpdatedAt: day(2024, time.March, 29),
		},
		{
			Name: "Zen Green Tea", Type: Green, Supplier: "Tazo", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.February, 5)), Rating: 0,
			TastingNotes: TastingNotes{
				DryLeaf: "Simple green tea blend with lemon verbena",
				WetLeaf: "Light citrus and vegetal notes",
			},
			SupplierDescription: "Smooth green tea blend with lemon verbena, spearmint, and lemongrass.",
			BrewingParams:       brew(175, 1.5, 180, 2),
			CreatedAt:           day(2024, time.February, 6), UpdatedAt: day(2024, time.February, 6),
		},
		{
			Name: "Aged Sheng Pu-erh 2015", Type: PuErh, Supplier: "The Tea Spot", InStock: true,
			PurchaseDate: ptr(NewDate(2024, time.March, 12)), Rating: 9,
			TastingNotes: TastingNotes{
				DryLeaf: "Earthy, forest-like aroma with hints of leather",
				WetLeaf: "Deep, complex earthiness with sweet undertones",
				Taste:   "Rich and complex with earthy depth. Sweet aftertaste develops beautifully",
			},
			SupplierDescription: "Raw pu-erh tea pressed in 2015 and aged naturally. Complex flavor develops with each steep.",
			BrewingParams:       brew(212, 4, 60, 8),
			HarvestSeason:       Spring, HarvestYear: ptr(2015),
			CreatedAt: day(2024, time.March, 13), UpdatedAt: day(2024, time.March, 13),
		},
	}
	for i := range teas {
		teas[i].ID = uuid.New()
	}
	return teas
}
