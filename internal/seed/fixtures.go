package seed

import "github.com/talenthub/talenthub-api/internal/core/domain"

type userFixture struct {
	Email      string
	Role       domain.UserRole
	FullName   string
	Bio        string
	Skills     []string
	HourlyRate float64
}

type jobFixture struct {
	ClientEmail     string
	Title           string
	Description     string
	Category        string
	BudgetMin       float64
	BudgetMax       float64
	ExperienceLevel domain.ExperienceLevel
	Status          domain.JobStatus
}

type projectFixture struct {
	FreelancerEmail string
	Title           string
	Description     string
	Price           float64
	DemoURL         string
	ThumbnailURL    string
}

// Fixtures is the full data set loaded by Seed.
type Fixtures struct {
	Users    []userFixture
	Jobs     []jobFixture
	Projects []projectFixture
}

// DefaultFixtures returns the demo marketplace.
func DefaultFixtures() Fixtures {
	return Fixtures{Users: demoUsers, Jobs: demoJobs, Projects: demoProjects}
}

var demoUsers = []userFixture{
	{Email: "admin@example.com", Role: domain.RoleAdmin, FullName: "Ada Admin"},
	{Email: "alice@example.com", Role: domain.RoleClient, FullName: "Alice Johnson", Bio: "Founder of an online retail startup."},
	{Email: "charlie@example.com", Role: domain.RoleClient, FullName: "Charlie Brown", Bio: "Marketing lead at a SaaS company."},
	{Email: "ethan@example.com", Role: domain.RoleClient, FullName: "Ethan Hunt", Bio: "CTO building internal tooling."},
	{Email: "george@example.com", Role: domain.RoleClient, FullName: "George Miller", Bio: "Product owner at a mobile startup."},
	{
		Email: "bob@example.com", Role: domain.RoleFreelancer, FullName: "Bob Smith",
		Bio: "Full-stack developer.", Skills: []string{"React", "Node.js", "PostgreSQL"}, HourlyRate: 65,
	},
	{
		Email: "diana@example.com", Role: domain.RoleFreelancer, FullName: "Diana Prince",
		Bio: "UX/UI designer.", Skills: []string{"Figma", "User Research", "Design Systems"}, HourlyRate: 70,
	},
	{
		Email: "fiona@example.com", Role: domain.RoleFreelancer, FullName: "Fiona Gallagher",
		Bio: "Frontend engineer.", Skills: []string{"Vue.js", "D3.js", "TypeScript"}, HourlyRate: 55,
	},
	{
		Email: "hannah@example.com", Role: domain.RoleFreelancer, FullName: "Hannah Baker",
		Bio: "Backend engineer.", Skills: []string{"Go", "Kubernetes", "REST"}, HourlyRate: 80,
	},
}

var demoJobs = []jobFixture{
	{
		ClientEmail: "alice@example.com", Title: "Modern E-commerce Website Design",
		Description: "Looking for a designer to create a modern, user-friendly e-commerce website with responsive layouts.",
		Category:    "Web Design", BudgetMin: 2000, BudgetMax: 4000,
		ExperienceLevel: domain.LevelIntermediate, Status: domain.JobOpen,
	},
	{
		ClientEmail: "alice@example.com", Title: "Brand Identity Package",
		Description: "Need a complete brand identity package including logo, color palette, typography and guidelines.",
		Category:    "Graphic Design", BudgetMin: 1500, BudgetMax: 3000,
		ExperienceLevel: domain.LevelExpert, Status: domain.JobOpen,
	},
	{
		ClientEmail: "charlie@example.com", Title: "SEO Optimization for SaaS Website",
		Description: "Seeking an SEO expert for on-page SEO, keyword research and content strategy.",
		Category:    "Digital Marketing", BudgetMin: 800, BudgetMax: 1500,
		ExperienceLevel: domain.LevelIntermediate, Status: domain.JobOpen,
	},
	{
		ClientEmail: "charlie@example.com", Title: "Social Media Campaign Management",
		Description: "Manage social media campaigns across Instagram, LinkedIn and Twitter for three months.",
		Category:    "Social Media Marketing", BudgetMin: 1200, BudgetMax: 2000,
		ExperienceLevel: domain.LevelIntermediate, Status: domain.JobInProgress,
	},
	{
		ClientEmail: "ethan@example.com", Title: "Full-Stack Web Application Development",
		Description: "Building a custom project management web application. React and Node.js expertise required.",
		Category:    "Web Development", BudgetMin: 5000, BudgetMax: 8000,
		ExperienceLevel: domain.LevelExpert, Status: domain.JobOpen,
	},
	{
		ClientEmail: "ethan@example.com", Title: "API Integration for CRM System",
		Description: "Integrate several third-party REST APIs into an existing CRM system.",
		Category:    "Backend Development", BudgetMin: 2500, BudgetMax: 4000,
		ExperienceLevel: domain.LevelIntermediate, Status: domain.JobOpen,
	},
	{
		ClientEmail: "george@example.com", Title: "MVP Mobile App Development",
		Description: "Build a cross-platform MVP for our startup, React Native or Flutter.",
		Category:    "Mobile Development", BudgetMin: 6000, BudgetMax: 10000,
		ExperienceLevel: domain.LevelExpert, Status: domain.JobOpen,
	},
	{
		ClientEmail: "george@example.com", Title: "Email Marketing Campaign Setup",
		Description: "Set up automated email campaigns with templates and automation workflows.",
		Category:    "Email Marketing", BudgetMin: 600, BudgetMax: 1200,
		ExperienceLevel: domain.LevelBeginner, Status: domain.JobClosed,
	},
}

var demoProjects = []projectFixture{
	{
		FreelancerEmail: "bob@example.com", Title: "E-Commerce Platform with React & Node.js",
		Description:  "Full-featured e-commerce platform with cart, Stripe payments, authentication and an admin dashboard.",
		Price:        5500,
		DemoURL:      "https://ecommerce-demo.vercel.app",
		ThumbnailURL: "https://images.unsplash.com/photo-1557821552-17105176677c?w=800",
	},
	{
		FreelancerEmail: "bob@example.com", Title: "Real-Time Chat Application",
		Description:  "Real-time chat over WebSockets with group chats, direct messages and file sharing.",
		Price:        3200,
		DemoURL:      "https://chat-app-demo.com",
		ThumbnailURL: "https://images.unsplash.com/photo-1611606063065-ee7946f0787a?w=800",
	},
	{
		FreelancerEmail: "diana@example.com", Title: "Mobile Banking App UI/UX Redesign",
		Description:  "Redesign of a mobile banking app focused on accessibility, backed by user research and usability testing.",
		Price:        4500,
		DemoURL:      "https://www.figma.com/proto/banking-app-redesign",
		ThumbnailURL: "https://images.unsplash.com/photo-1563986768609-322da13575f3?w=800",
	},
	{
		FreelancerEmail: "diana@example.com", Title: "SaaS Dashboard Design System",
		Description:  "Design system for a SaaS product with components, style guide and design tokens.",
		Price:        6800,
		ThumbnailURL: "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=800",
	},
	{
		FreelancerEmail: "fiona@example.com", Title: "Corporate Website with Vue.js",
		Description:  "Corporate website built with Vue.js, tuned for performance and SEO.",
		Price:        3800,
		DemoURL:      "https://corporate-site-demo.netlify.app",
		ThumbnailURL: "https://images.unsplash.com/photo-1467232004584-a241de8bcf5d?w=800",
	},
	{
		FreelancerEmail: "hannah@example.com", Title: "Microservices Architecture Implementation",
		Description:  "Split a monolith into Go microservices running on Kubernetes.",
		Price:        7500,
		ThumbnailURL: "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=800",
	},
}
