package catalog

import "upaheart-backend/internal/models"

var products = []models.Product{
	{
		ID:              "p1",
		Name:            "Lithophane Lamp Custom",
		Price:           1200,
		OriginalPrice:   1500,
		Category:        "Lighting",
		IsCustomizable:  true,
		Description:     "A bespoke 3D printed lamp that reveals your memory when lit.",
		LongDescription: "Crafted with precision using high-grade PLA filament, our signature Lithophane Lamp transforms your cherished digital memories into a tangible, glowing masterpiece. When turned off, it appears as a textured white sculpture. When lit, the varying thickness of the 3D print reveals your photo in stunning high-definition grayscale detail. Includes a wooden base and warm-white LED integration.",
		Features:        []string{"Custom 3D Print from your photo", "Warm LED Backlight", "Premium Oak Wood Base", "USB Powered"},
		Images: []string{
			"/main.png",
			"/Post_3.png",
			"/Process.png",
			"/On-Off.png",
		},
	},
	{
		ID:              "p2",
		Name:            "Geometric Vase (Obsidian)",
		Price:           850,
		Category:        "Decor",
		IsCustomizable:  false,
		Description:     "Minimalist vase with complex geometric overhangs.",
		LongDescription: "This vase pushes the boundaries of FDM 3D printing, featuring aggressive overhangs and a matte black finish that absorbs light, making it a striking centerpiece for any modern home. Watertight and durable.",
		Features:        []string{"Matte Black Finish", "Watertight", "Complex Geometry", "Eco-friendly PLA+"},
		Images: []string{
			"https://picsum.photos/id/1060/800/800",
			"https://picsum.photos/id/106/800/800",
		},
	},
	{
		ID:              "p3",
		Name:            "Topographic Desk Organizer",
		Price:           650,
		Category:        "Office",
		IsCustomizable:  false,
		Description:     "Keep your workspace tidy with a landscape-inspired tray.",
		LongDescription: "Inspired by the rolling hills of the Swiss Alps, this desk organizer features varied elevations to hold pens, keys, and accessories. A functional piece of art for the discerning professional.",
		Features:        []string{"Topographic Design", "Weighted Base", "Soft-touch Finish"},
		Images: []string{
			"https://picsum.photos/id/366/800/800",
			"https://picsum.photos/id/367/800/800",
		},
	},
	{
		ID:              "p4",
		Name:            "Voronoi Wall Art",
		Price:           2100,
		Category:        "Art",
		IsCustomizable:  false,
		Description:     "Generative design wall piece.",
		LongDescription: "A large-format wall sculpture created using Voronoi algorithms. Each cell is unique, creating a play of shadow and light on your wall.",
		Features:        []string{"Wall Mount Included", "Lightweight Structure", "Generative Art"},
		Images: []string{
			"https://picsum.photos/id/231/800/800",
			"https://picsum.photos/id/232/800/800",
		},
	},
}
