package database

import (
	"fmt"

	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

func img(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=600&q=80"
}

// MenuSeed is the house menu loaded by SeedMenu.
var MenuSeed = []models.MenuItem{
	{Name: "Avocado Harvest Bowl", Description: "Creamy avocado, quinoa, roasted sweet potatoes, and organic kale with a lemon-tahini dressing.", Price: 240, Category: models.CategoryStarters, Image: img("1512621776951-a57141f2eefd"), IsVeg: true},
	{Name: "Truffle Bruschetta", Description: "Toasted sourdough topped with wild mushrooms, truffle oil, and aged parmesan shavings.", Price: 140, Category: models.CategoryStarters, Image: img("1572695157366-5e585ab2b69f"), IsVeg: true},
	{Name: "Saffron Sea Scallops", Description: "Hokkaido scallops with saffron-infused foam, pea tendrils, and chorizo oil.", Price: 380, Category: models.CategoryStarters, Image: img("1559847844-5315695dadae")},

	{Name: "Smoked Wagyu Ribeye", Description: "45-day dry-aged beef, served with black garlic purée and charred heritage carrots.", Price: 850, Category: models.CategoryMainCourse, Image: img("1544025162-d76694265947")},
	{Name: "Hand-Cut Truffle Linguine", Description: "Fresh egg pasta tossed in cultured butter, finished with shaved black Perigord truffles.", Price: 420, Category: models.CategoryMainCourse, Image: img("1556761223-4c4282c73f77"), IsVeg: true},
	{Name: "Pan-Seared Sea Bass", Description: "Wild-caught bass with a crisp skin, served over saffron risotto and a delicate beurre blanc.", Price: 380, Category: models.CategoryMainCourse, Image: img("1467003909585-2f8a72700288")},
	{Name: "Wagyu Beef Burger", Description: "Premium wagyu patty with caramelized onions, aged cheddar, and house-made pickles on brioche.", Price: 350, Category: models.CategoryMainCourse, Image: img("1568901346375-23c9450c58cd")},
	{Name: "Honey Glazed Arctic Char", Description: "Wild-caught char, miso-honey glaze, served with pickled radish and ginger broth.", Price: 540, Category: models.CategoryMainCourse, Image: img("1485921325833-c519f76c4927")},

	{Name: "Molten Cacao Core", Description: "70% dark Belgian chocolate lava cake served with Tahitian vanilla bean gelato and gold leaf.", Price: 180, Category: models.CategoryDesserts, Image: img("1606313564200-e75d5e30476c"), IsVeg: true},
	{Name: "Tiramisu Classico", Description: "Traditional Italian tiramisu with espresso-soaked ladyfingers and mascarpone cream.", Price: 160, Category: models.CategoryDesserts, Image: img("1571877227200-a0d98ea607e9"), IsVeg: true},
	{Name: "Crème Brûlée", Description: "Classic vanilla custard with a caramelized sugar shell, infused with Madagascar vanilla.", Price: 150, Category: models.CategoryDesserts, Image: img("1470124182917-cc6e71b22ecc"), IsVeg: true},

	{Name: "Amber Dusk Cocktail", Description: "Aged bourbon infused with charred orange, botanical bitters, and a whisper of wood smoke.", Price: 160, Category: models.CategoryBeverages, Image: img("1514362545857-3bc16c4c7d1b"), IsVeg: true},
	{Name: "Fresh Mint Lemonade", Description: "Hand-pressed lemons with fresh mint leaves, a touch of honey, and sparkling water.", Price: 90, Category: models.CategoryBeverages, Image: img("1556881286-fc6915169721"), IsVeg: true},
	{Name: "Japanese Matcha Latte", Description: "Ceremonial-grade Uji matcha whisked with steamed oat milk and a hint of vanilla.", Price: 120, Category: models.CategoryBeverages, Image: img("1536256263959-770b48d82b0a"), IsVeg: true},
}

// SeedMenu replaces the whole catalog with MenuSeed.
func SeedMenu(db *gorm.DB) (int, error) {
	items := make([]models.MenuItem, len(MenuSeed))
	copy(items, MenuSeed)
	for i := range items {
		items[i].IsAvailable = true
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.MenuItem{}).Error; err != nil {
			return fmt.Errorf("clear menu: %w", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert menu: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	utils.InfoLogger.WithField("count", len(items)).Info("Seeded menu items")
	return len(items), nil
}
