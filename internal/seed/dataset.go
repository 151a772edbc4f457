package seed

import (
	"time"

	"portfolio/internal/models"
)

// The curated dataset below is the canonical portfolio content. The public
// list endpoints also serve it as a fallback when the database is
// unreachable, so the site never renders empty.

// Projects returns the curated project rows.
func Projects() []models.Project {
	return []models.Project{
		{
			Title:            "Latency-Aware Request Router",
			Slug:             "latency-aware-router",
			ShortDescription: "An HTTP edge router that steers traffic by observed tail latency instead of round-robin.",
			FullDescription:  "The router keeps a per-backend EWMA of p99 latency and shifts weight away from degrading nodes before health checks trip. Built to survive partial brownouts where every backend still answers, just slowly.",
			ProblemStatement: "Round-robin keeps sending full weight to a backend that is one GC pause away from timing out.",
			Approach:         "Power-of-two-choices selection weighted by an exponentially decayed latency estimate, with a floor so cold backends still receive probes.",
			Results:          "p99 under induced brownout dropped from 2.1s to 310ms in load tests; error rate held under 0.1%.",
			Limitations:      "Latency signal conflates network and backend time; a slow client link can unfairly penalize a healthy node.",
			Categories:       []string{"infrastructure", "networking"},
			Tags:             []string{"go", "load-balancing", "latency"},
			Visibility:       models.VisibilityPublic,
			IsFeatured:       true,
			Metrics: []models.ProjectMetric{
				{Label: "p99 under brownout", Value: "310ms"},
				{Label: "error rate", Value: "<0.1%"},
			},
			GithubLink: "https://github.com/example/latency-router",
			Images: []models.ProjectImage{
				{URL: "/assets/projects/router-arch.png", Caption: "Selection pipeline"},
			},
		},
		{
			Title:            "Columnar Log Store",
			Slug:             "columnar-log-store",
			ShortDescription: "A write-optimized store for structured logs with per-field compression.",
			FullDescription:  "Ingests JSON logs, shreds them into typed columns, and compresses each column with a codec picked by sampled entropy. Queries touch only the columns they name.",
			ProblemStatement: "Row-oriented log storage pays full decompression cost for queries that read two fields out of forty.",
			Approach:         "Dictionary encoding for low-cardinality fields, delta-of-delta for timestamps, zstd for the long tail, plus a sparse index per segment.",
			Results:          "4.2x smaller than gzip'd JSON on production samples; field-restricted scans run 11x faster.",
			Limitations:      "Schema drift forces a segment rotation; deeply nested payloads fall back to an opaque column.",
			Categories:       []string{"storage"},
			Tags:             []string{"go", "compression", "columnar"},
			Visibility:       models.VisibilityGated,
			IsFeatured:       true,
			Metrics: []models.ProjectMetric{
				{Label: "compression vs gzip JSON", Value: "4.2x"},
				{Label: "scan speedup", Value: "11x"},
			},
			GatedCode: "https://github.com/example/columnar-logs-private",
			Downloads: []string{"/assets/gated/columnar-log-store-benchmarks.pdf"},
		},
		{
			Title:            "Fleet Anomaly Screener",
			Slug:             "fleet-anomaly-screener",
			ShortDescription: "Streaming detection of misbehaving hosts across a server fleet.",
			FullDescription:  "Consumes host telemetry and flags machines whose metric trajectories diverge from their cohort, catching bad kernels and failing disks before alerts fire.",
			ProblemStatement: "Static thresholds either page constantly or miss the slow drift that precedes hardware failure.",
			Approach:         "Robust z-scores against a rolling cohort baseline, with a debounce window to suppress deploy-induced spikes.",
			Results:          "Surfaced 80% of confirmed disk failures at least 6 hours before SMART alerts in a 3-month replay.",
			Limitations:      "Cohort baselines assume homogeneous hardware; mixed fleets need manual cohort maps.",
			Categories:       []string{"observability", "ml"},
			Tags:             []string{"streaming", "anomaly-detection"},
			Visibility:       models.VisibilityNDA,
		},
	}
}

// Publications returns the curated publication rows.
func Publications() []models.Publication {
	return []models.Publication{
		{
			Title:    "Tail-Latency Routing Under Partial Degradation",
			Authors:  []string{"A. Researcher", "B. Colleague"},
			Journal:  "Proceedings of the Workshop on Networked Systems",
			Year:     2024,
			Status:   models.PublicationStatusPublished,
			Abstract: "We show that latency-weighted load balancing sustains service objectives through brownouts that defeat health-check based schemes.",
			Contributions: []string{
				"A decay schedule that balances reactivity against oscillation",
				"An open replay harness for brownout scenarios",
			},
			PDFURL:   "/assets/papers/tail-latency-routing.pdf",
			DOILink:  "https://doi.org/10.0000/example.2024.17",
			CodeRepo: "https://github.com/example/latency-router",
		},
		{
			Title:    "Entropy-Guided Codec Selection for Log Columns",
			Authors:  []string{"A. Researcher"},
			Journal:  "Journal of Storage Systems",
			Year:     2025,
			Status:   models.PublicationStatusPreprint,
			Abstract: "Sampling column entropy at ingest time selects compression codecs within 3% of the oracle choice at negligible cost.",
			PDFURL:   "/assets/papers/entropy-codec-selection.pdf",
		},
	}
}

// Certifications returns the curated certification rows.
func Certifications() []models.Certification {
	return []models.Certification{
		{
			Title:          "Certified Kubernetes Administrator",
			Issuer:         "Cloud Native Computing Foundation",
			Description:    "Cluster operations, networking, and troubleshooting.",
			ImageURL:       "/assets/certs/cka.png",
			CertificateURL: "https://example.com/verify/cka",
			IssueDate:      "2023-06",
		},
		{
			Title:          "AWS Solutions Architect Associate",
			Issuer:         "Amazon Web Services",
			Description:    "Designing resilient and cost-aware architectures on AWS.",
			ImageURL:       "/assets/certs/aws-saa.png",
			CertificateURL: "https://example.com/verify/aws-saa",
			IssueDate:      "2024-01",
		},
	}
}

// BlogPosts returns the curated blog rows.
func BlogPosts() []models.BlogPost {
	publishedAt := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)
	return []models.BlogPost{
		{
			Title:       "What a Brownout Taught Me About Health Checks",
			Slug:        "brownout-health-checks",
			Excerpt:     "Health checks answer the wrong question. The interesting failures are the ones where everything is technically up.",
			Content:     "Health checks answer the wrong question. A backend that responds to /healthz in 2ms can still be serving real traffic in 2 seconds, and your load balancer will happily keep feeding it. This post walks through a production brownout where every dashboard was green while p99 tripled, and how we rebuilt routing around observed latency instead of liveness. The short version: treat latency as the health signal, decay it fast enough to recover, and always keep a probe floor so you notice when a node gets better.",
			Tags:        []string{"reliability", "load-balancing"},
			Status:      models.BlogPostStatusPublished,
			ReadingTime: 1,
			PublishedAt: &publishedAt,
		},
		{
			Title:   "Notes on Column Shredding",
			Slug:    "notes-on-column-shredding",
			Excerpt: "Draft notes on turning messy JSON logs into typed columns without a schema registry.",
			Content: "Draft. Shredding heuristics, type inference fallbacks, and where it all goes wrong with schema drift.",
			Tags:    []string{"storage"},
			Status:  models.BlogPostStatusDraft,
		},
	}
}
