package recommend

// Types mirroring the recommendations_response schema. Field names are the
// wire names the frontend consumes.

type QuickView struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	NextStep  string   `json:"nextStep"`
}

type Evidence struct {
	AlumniPatterns  string `json:"alumniPatterns"`
	IndustryContext string `json:"industryContext"`
}

type DetailedView struct {
	Reasoning        string   `json:"reasoning"`
	Evidence         Evidence `json:"evidence"`
	DiscussionPoints []string `json:"discussionPoints"`
}

type Recommendation struct {
	Id           int          `json:"id"`
	Type         string       `json:"type"`
	QuickView    QuickView    `json:"quickView"`
	DetailedView DetailedView `json:"detailedView"`
}

type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// SchemaName is the name the structured-output call registers the schema under.
const SchemaName = "recommendations_response"

// SchemaJSON is the schema itself. Every object closes with
// additionalProperties false and lists all of its properties as required, so
// providers in strict mode cannot emit loose output.
const SchemaJSON = `{
  "type": "object",
  "properties": {
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "integer",
            "description": "Recommendation number, 1 through 5"
          },
          "type": {
            "type": "string",
            "enum": ["alumni", "trend", "figure"],
            "description": "Source of the pathway suggestion"
          },
          "quickView": {
            "type": "object",
            "properties": {
              "title": {
                "type": "string",
                "description": "Concise pathway name"
              },
              "summary": {
                "type": "string",
                "description": "2-3 sentences analyzing student fit"
              },
              "keyPoints": {
                "type": "array",
                "items": {"type": "string"},
                "description": "Exactly 3 critical considerations"
              },
              "nextStep": {
                "type": "string",
                "description": "One concrete next action for the advisor"
              }
            },
            "required": ["title", "summary", "keyPoints", "nextStep"],
            "additionalProperties": false
          },
          "detailedView": {
            "type": "object",
            "properties": {
              "reasoning": {
                "type": "string",
                "description": "Detailed analysis of fit and alignment"
              },
              "evidence": {
                "type": "object",
                "properties": {
                  "alumniPatterns": {
                    "type": "string",
                    "description": "Relevant alumni examples and patterns"
                  },
                  "industryContext": {
                    "type": "string",
                    "description": "Supporting industry trends and developments"
                  }
                },
                "required": ["alumniPatterns", "industryContext"],
                "additionalProperties": false
              },
              "discussionPoints": {
                "type": "array",
                "items": {"type": "string"},
                "description": "Exactly 3 topics for the advisor-student conversation"
              }
            },
            "required": ["reasoning", "evidence", "discussionPoints"],
            "additionalProperties": false
          }
        },
        "required": ["id", "type", "quickView", "detailedView"],
        "additionalProperties": false
      }
    }
  },
  "required": ["recommendations"],
  "additionalProperties": false
}`
