package era

// Default returns the built-in eras in chronological order. Each call
// returns a fresh copy so callers cannot mutate the shared dataset.
func Default() []Era {
	out := make([]Era, len(defaultEras))
	for i, e := range defaultEras {
		e.RegionNames = append([]string(nil), e.RegionNames...)
		e.Facts = append([]string(nil), e.Facts...)
		out[i] = e
	}
	return out
}

var defaultEras = []Era{
	{
		ID:          "prehistoric-era",
		Name:        "Prehistoric Era (3.3M - 3000 BCE)",
		Description: "The dawn of humanity, witnessing the evolution from early hominids to complex hunter-gatherer societies. This era encompasses the development of language, art, tools, and the revolutionary transition to agriculture that would forever change human civilization.",
		RegionNames: []string{"African Origins", "Paleolithic Europe", "Neolithic Settlements", "Early Americas", "Australian Aboriginals"},
		Facts: []string{
			"Humans controlled fire over 1 million years ago!",
			"The oldest known cave paintings are 65,000 years old",
			"The bow and arrow was invented 64,000 years ago",
		},
	},
	{
		ID:          "ancient-civilizations",
		Name:        "Ancient Civilizations (3000 - 500 BCE)",
		Description: "The birth of the world's first complex civilizations along fertile river valleys. This period saw the invention of writing, the establishment of the first cities, the development of organized religion, and the creation of monumental architecture that still inspires awe today.",
		RegionNames: []string{"Mesopotamian Cradle", "Pharaonic Egypt", "Indus Valley Cities", "Shang Dynasty China", "Minoan Crete", "Olmec Mesoamerica"},
		Facts: []string{
			"The first writing system was created in 3200 BCE",
			"The Great Pyramid was the world's tallest building for 3,800 years",
			"Agriculture began independently in 7 different regions",
		},
	},
	{
		ID:          "classical-antiquity",
		Name:        "Classical Antiquity (800 BCE - 600 CE)",
		Description: "The golden age of ancient philosophy, democracy, and empire-building. This era produced the greatest thinkers, warriors, and leaders of the ancient world, establishing foundations of law, politics, art, and science that continue to influence modern civilization.",
		RegionNames: []string{"Athenian Democracy", "Roman Empire", "Persian Empires", "Mauryan India", "Han Dynasty China", "Celtic Tribes"},
		Facts: []string{
			"The Parthenon was built without any mortar",
			"Romans built 50,000 miles of roads",
			"The Library of Alexandria had 700,000 scrolls",
		},
	},
	{
		ID:          "post-classical",
		Name:        "Post-Classical Era (600 - 1000 CE)",
		Description: "A period of great religious expansion and cultural synthesis. The rise of Islam transformed vast regions, while Christianity spread throughout Europe. Trade networks connected distant civilizations, facilitating unprecedented cultural and technological exchange.",
		RegionNames: []string{"Islamic Golden Age", "Byzantine Empire", "Tang Dynasty China", "Feudal Japan", "Maya Civilization", "Viking Territories", "Ethiopian Empire"},
		Facts: []string{
			"The number zero was invented in India",
			"The first university was founded in Morocco in 859 CE",
			"Viking longships could travel at 17 knots",
		},
	},
	{
		ID:          "high-middle-ages",
		Name:        "High Middle Ages (1000 - 1300 CE)",
		Description: "An era of remarkable growth, innovation, and cultural achievement. The medieval world experienced agricultural revolution, urban revival, cathedral building, university founding, and the Crusades, while great empires flourished from Mongolia to Mali.",
		RegionNames: []string{"Medieval Europe", "Mongol Empire", "Crusader States", "Islamic Spain", "Song Dynasty China", "Khmer Empire", "Mali Empire", "Aztec Empire"},
		Facts: []string{
			"Gothic cathedrals took 100+ years to build",
			"A suit of armor weighed only 45-55 pounds",
			"The Mongol Empire was 4x larger than Alexander's",
		},
	},
	{
		ID:          "late-middle-ages",
		Name:        "Late Middle Ages (1300 - 1500 CE)",
		Description: "A time of both crisis and transformation. The Black Death, religious upheaval, and political changes challenged medieval society, while the Renaissance began to bloom in Italy and explorers opened new worlds to European eyes.",
		RegionNames: []string{"Renaissance Italy", "Ottoman Empire", "Ming Dynasty China", "Inca Empire", "Reconquista Spain", "Hanseatic League", "Timurid Empire"},
		Facts: []string{
			"The Mona Lisa was painted on a poplar wood panel",
			"Columbus thought he had reached Asia",
			"Gutenberg's printing press used 25,000 pieces of type",
		},
	},
	{
		ID:          "early-modern",
		Name:        "Early Modern Period (1500 - 1800 CE)",
		Description: "The age of exploration, scientific revolution, and religious reformation. European powers established global empires while new ideas about government, science, and human rights emerged, setting the stage for the modern world.",
		RegionNames: []string{"Colonial Americas", "Mughal India", "Qing China", "Tokugawa Japan", "Ottoman Empire", "Russian Empire", "Enlightenment Europe", "African Kingdoms"},
		Facts: []string{
			"Galileo's telescope magnified objects 20x",
			"Spanish silver from the Americas caused global inflation",
			"Turkeys were first domesticated by the Aztecs",
		},
	},
	{
		ID:          "industrial-age",
		Name:        "Industrial Age (1760 - 1914 CE)",
		Description: "The transformation of human society through mechanization, urbanization, and technological innovation. Steam power, railways, and factories revolutionized production and daily life, while new ideologies challenged traditional social orders.",
		RegionNames: []string{"Industrial Britain", "Expanding America", "Meiji Japan", "Imperial Germany", "Tsarist Russia", "Colonial Africa", "Qing China", "Latin American Republics"},
		Facts: []string{
			"The first steam locomotive reached 5 mph",
			"Edison tested 3,000 materials for light bulb filaments",
			"Factory workers worked 14-16 hours per day",
		},
	},
	{
		ID:          "modern-world",
		Name:        "Modern World (1914 - 1991 CE)",
		Description: "An era defined by total wars, ideological conflicts, and rapid technological advancement. Two world wars reshaped global politics, while the Cold War divided the world into competing blocs. Decolonization created new nations as humanity reached for the stars.",
		RegionNames: []string{"Soviet Union", "Nazi Germany", "Imperial Japan", "United States", "British Empire", "Third Reich", "Communist China", "Decolonizing Africa", "Middle East"},
		Facts: []string{
			"The Wright brothers' first flight lasted 12 seconds",
			"Radio waves travel at the speed of light",
			"The Space Race put 12 humans on the Moon",
		},
	},
	{
		ID:          "contemporary-era",
		Name:        "Contemporary Era (1991 - Present)",
		Description: "The digital age of globalization, technological revolution, and environmental awareness. The fall of the Soviet Union ushered in American hegemony, while the internet connected humanity like never before. Climate change and global challenges define our current epoch.",
		RegionNames: []string{"Silicon Valley", "European Union", "Rising China", "Post-Soviet Russia", "Middle East", "Emerging Africa", "Digital Asia", "Latin America", "Arctic Nations"},
		Facts: []string{
			"The first computer weighed 30 tons",
			"The World Wide Web has over 1.7 billion websites",
			"Smartphones are more powerful than 1960s supercomputers",
		},
	},
}
