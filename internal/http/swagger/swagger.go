package swagger

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/graphql-crm/api-contract"
)

const (
	docsURL     = "/docs"
	specYAMLURL = "/docs/openapi.yml"
	specJSONURL = "/docs/openapi.json"
)

// Register serves the Swagger UI and the validated OpenAPI document.
func Register(r chi.Router, doc *openapi3.T) error {
	specJSON, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}

	page := []byte(uiPage(specYAMLURL))
	specYAML := apicontract.GetSpecBytes()

	r.Get(docsURL, write("text/html; charset=utf-8", page))
	r.Get(specYAMLURL, write("application/yaml", specYAML))
	r.Get(specJSONURL, write("application/json", specJSON))

	return nil
}

func write(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body)
	}
}

func uiPage(specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>GraphQL CRM API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({ url: '%s', dom_id: '#swagger-ui', deepLinking: true });
  };
</script>
</body>
</html>
`, specPath)
}
