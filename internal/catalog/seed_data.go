package catalog

import "github.com/abhisek/levelup/internal/model"

// seedSubjects is the built-in catalog: five subjects, each with a ladder of
// levels from easiest to hardest and the subtopics taught at each level.
var seedSubjects = []model.Subject{
	{
		ID:        "math",
		Name:      "Math",
		Icon:      "📐",
		SortOrder: 1,
		Levels: levels("math",
			levelSpec{"1st Grade", []string{"Counting", "Addition", "Subtraction", "Shapes", "Comparing Numbers"}},
			levelSpec{"2nd Grade", []string{"Addition & Subtraction", "Place Value", "Measurement", "Time", "Money", "Word Problems"}},
			levelSpec{"3rd Grade", []string{"Multiplication", "Division", "Fractions", "Area & Perimeter", "Rounding", "Word Problems"}},
			levelSpec{"4th Grade", []string{"Multi-digit Multiplication", "Long Division", "Fractions", "Decimals", "Factors & Multiples", "Geometry"}},
			levelSpec{"5th Grade", []string{"Fractions Operations", "Decimals Operations", "Volume", "Coordinate Plane", "Order of Operations", "Expressions"}},
			levelSpec{"6th Grade", []string{"Ratios", "Percents", "Integers", "Expressions & Equations", "Area & Surface Area", "Statistics"}},
			levelSpec{"7th Grade", []string{"Proportions", "Percent Applications", "Rational Numbers", "Two-Step Equations", "Inequalities", "Geometry", "Probability"}},
			levelSpec{"8th Grade", []string{"Linear Equations", "Systems of Equations", "Functions", "Slope & Graphing", "Exponents", "Pythagorean Theorem", "Transformations"}},
			levelSpec{"Algebra 1", []string{"Linear Equations", "Inequalities", "Systems of Equations", "Polynomials", "Factoring", "Quadratic Equations", "Radical Expressions", "Functions"}},
			levelSpec{"Geometry", []string{"Logic & Proofs", "Parallel Lines", "Triangles", "Similar Figures", "Right Triangles", "Quadrilaterals", "Circles", "Area & Volume"}},
			levelSpec{"Algebra 2", []string{"Complex Numbers", "Polynomial Functions", "Rational Functions", "Exponential Functions", "Logarithms", "Sequences & Series", "Conic Sections"}},
			levelSpec{"Pre-Calculus", []string{"Functions & Graphs", "Polynomial & Rational Functions", "Exponential & Logarithmic", "Trigonometric Functions", "Trigonometric Identities", "Vectors", "Polar Coordinates", "Limits"}},
			levelSpec{"Calculus", []string{"Limits & Continuity", "Derivatives", "Applications of Derivatives", "Integrals", "Integration Techniques", "Applications of Integration", "Differential Equations"}},
		),
	},
	{
		ID:        "science",
		Name:      "Science",
		Icon:      "🔬",
		SortOrder: 2,
		Levels: levels("science",
			levelSpec{"1st Grade", []string{"Living Things", "Plants", "Animals", "Weather", "Senses"}},
			levelSpec{"2nd Grade", []string{"Life Cycles", "Habitats", "Matter", "Forces & Motion", "Earth Materials"}},
			levelSpec{"3rd Grade", []string{"Ecosystems", "Adaptations", "Weather & Climate", "Simple Machines", "Solar System"}},
			levelSpec{"4th Grade", []string{"Energy", "Electricity", "Sound & Light", "Rock Cycle", "Human Body"}},
			levelSpec{"5th Grade", []string{"Cells", "Matter & Chemistry", "Forces", "Earth Systems", "Space"}},
			levelSpec{"6th Grade", []string{"Cells & Organisms", "Energy Transfer", "Waves", "Earth Science", "Weather Systems"}},
			levelSpec{"Life Science", []string{"Cell Biology", "Genetics", "Evolution", "Ecology", "Human Biology", "Classification"}},
			levelSpec{"Earth Science", []string{"Plate Tectonics", "Rocks & Minerals", "Atmosphere", "Oceanography", "Climate", "Astronomy"}},
			levelSpec{"Physical Science", []string{"Motion & Forces", "Energy", "Waves & Sound", "Light & Optics", "Electricity & Magnetism", "Matter & Chemistry"}},
			levelSpec{"Biology", []string{"Biochemistry", "Cell Biology", "Molecular Genetics", "Evolution", "Ecology", "Plant Biology", "Animal Physiology"}},
			levelSpec{"Chemistry", []string{"Atomic Structure", "Chemical Bonding", "Stoichiometry", "States of Matter", "Solutions", "Acids & Bases", "Thermochemistry"}},
			levelSpec{"Physics", []string{"Kinematics", "Dynamics", "Energy & Work", "Momentum", "Waves & Optics", "Electricity", "Magnetism"}},
		),
	},
	{
		ID:        "history",
		Name:      "History",
		Icon:      "📜",
		SortOrder: 3,
		Levels: levels("history",
			levelSpec{"3rd Grade", []string{"Community", "Maps & Geography", "Native Americans", "Colonial America", "American Symbols"}},
			levelSpec{"4th Grade", []string{"State History", "Regions of US", "American Revolution", "Early America", "Westward Expansion"}},
			levelSpec{"5th Grade", []string{"Colonial Period", "Revolutionary War", "Constitution", "Civil War", "Immigration"}},
			levelSpec{"6th Grade", []string{"Ancient Civilizations", "World Geography", "World Religions", "Medieval Period", "Ancient Asia"}},
			levelSpec{"7th Grade", []string{"Age of Exploration", "Renaissance", "Reformation", "Enlightenment", "Revolutions"}},
			levelSpec{"8th Grade", []string{"Early Republic", "Sectionalism", "Reconstruction", "Industrialization", "Progressive Era"}},
			levelSpec{"US History", []string{"World War I", "Roaring Twenties", "Great Depression", "World War II", "Cold War", "Civil Rights", "Modern America"}},
			levelSpec{"World History", []string{"Ancient World", "Medieval World", "Early Modern Period", "Age of Revolutions", "World Wars", "Cold War Era", "Contemporary World"}},
			levelSpec{"Government", []string{"Constitutional Foundations", "Branches of Government", "Federalism", "Civil Rights & Liberties", "Political Parties", "Public Policy"}},
		),
	},
	{
		ID:        "spanish",
		Name:      "Spanish",
		Icon:      "🇪🇸",
		SortOrder: 4,
		Levels: levels("spanish",
			levelSpec{"Novice", []string{"Greetings", "Numbers", "Colors & Shapes", "Family", "Basic Phrases"}},
			levelSpec{"Beginner", []string{"Present Tense", "Nouns & Articles", "Adjectives", "Common Verbs", "Daily Activities", "Food & Drink"}},
			levelSpec{"Intermediate", []string{"Past Tense", "Object Pronouns", "Reflexive Verbs", "Comparisons", "Future Tense", "Commands"}},
			levelSpec{"Upper Intermediate", []string{"Subjunctive Mood", "Conditional", "Perfect Tenses", "Por vs Para", "Relative Pronouns", "Idiomatic Expressions"}},
			levelSpec{"Advanced", []string{"Past Subjunctive", "Passive Voice", "Advanced Grammar", "Literary Spanish", "Regional Variations", "Advanced Vocabulary"}},
		),
	},
	{
		ID:        "computer-programming",
		Name:      "Computer Programming",
		Icon:      "💻",
		SortOrder: 5,
		Levels: levels("computer-programming",
			levelSpec{"Coding Basics", []string{"What is Programming", "Algorithms", "Pseudocode", "Binary & Data", "Programming Languages"}},
			levelSpec{"Variables & Data", []string{"Variables", "Data Types", "Operators", "Type Conversion", "Constants"}},
			levelSpec{"Logic & Control Flow", []string{"Boolean Logic", "If Statements", "Switch Statements", "Nested Conditions", "Error Handling"}},
			levelSpec{"Loops & Iteration", []string{"For Loops", "While Loops", "Loop Control", "Nested Loops", "Iteration Patterns"}},
			levelSpec{"Functions", []string{"Function Basics", "Parameters", "Return Values", "Scope", "Recursion"}},
			levelSpec{"Data Structures", []string{"Arrays", "Objects", "Stacks & Queues", "Sets & Maps", "Sorting & Searching"}},
			levelSpec{"Web Fundamentals", []string{"HTML Basics", "CSS Basics", "Layout", "Responsive Design", "Web Forms"}},
			levelSpec{"JavaScript Essentials", []string{"JS Syntax", "DOM Manipulation", "Events", "Async JavaScript", "ES6 Features"}},
			levelSpec{"Databases & APIs", []string{"SQL Basics", "Database Design", "REST APIs", "Fetch & AJAX", "JSON"}},
			levelSpec{"Git & Collaboration", []string{"Git Basics", "Branching", "Remote Repos", "Pull Requests", "Collaboration"}},
			levelSpec{"AI & LLM Fundamentals", []string{"What is AI", "How LLMs Work", "Prompt Engineering", "AI Ethics", "AI Applications"}},
			levelSpec{"AI-Assisted Coding", []string{"Code Generation", "Debugging with AI", "Code Review", "Documentation", "Testing with AI"}},
		),
	},
}
