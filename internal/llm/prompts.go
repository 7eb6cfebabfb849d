package llm

import "fmt"

// chunkSystemPrompt instructs the model to extract structured facts from a
// block of source files.
const chunkSystemPrompt = `You are an expert code analyzer. Analyze the provided code and extract structured information.
Focus on:
1. Key classes and their purposes
2. Important methods with signatures and descriptions
3. Design patterns used
4. Code complexity indicators
5. Dependencies and relationships

Return your analysis in a structured JSON format.`

// overviewSystemPrompt instructs the model to characterize the project as a
// whole from its structure and readme.
const overviewSystemPrompt = `You are an expert software architect analyzing a codebase.
Provide a high-level overview of the project including its purpose, architecture, and key technologies.`

// ChunkPrompt builds the instruction/payload pair for one chunk call. The
// chunk is identified to the model by its 1-based position for readability;
// the authoritative sequence number never leaves the pipeline.
func ChunkPrompt(chunkText string, seq, totalChunks int) (system, user string) {
	user = fmt.Sprintf(`Analyze the following code (Chunk %d/%d):

%s

Please provide a JSON response with the following structure:
{
    "chunk_id": %d,
    "files": [
        {
            "path": "file/path",
            "classes": [
                {
                    "name": "ClassName",
                    "purpose": "Brief description",
                    "methods": [
                        {
                            "name": "methodName",
                            "signature": "returnType methodName(params)",
                            "description": "What this method does",
                            "complexity": "low/medium/high"
                        }
                    ],
                    "relationships": ["depends on X", "implements Y"]
                }
            ],
            "key_functions": [],
            "complexity_notes": "Overall complexity assessment"
        }
    ]
}

Be concise but thorough. Focus on the most important elements.`, seq+1, totalChunks, chunkText, seq)
	return chunkSystemPrompt, user
}

// OverviewPrompt builds the instruction/payload pair for the single overview
// call.
func OverviewPrompt(overviewText, repoURL string) (system, user string) {
	if repoURL == "" {
		repoURL = "Unknown"
	}
	user = fmt.Sprintf(`Analyze this project overview:

Repository: %s

%s

Please provide a JSON response with:
{
    "project_name": "Name of the project",
    "purpose": "What this project does",
    "domain": "Application domain (e.g., e-commerce, data processing, web app)",
    "key_technologies": ["tech1", "tech2"],
    "architecture_style": "MVC, Microservices, Layered, etc.",
    "main_components": [
        {
            "name": "component name",
            "description": "what it does"
        }
    ],
    "estimated_complexity": "low/medium/high",
    "notable_features": ["feature1", "feature2"]
}`, repoURL, overviewText)
	return overviewSystemPrompt, user
}
