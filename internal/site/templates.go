package site

// pageTemplate wraps rendered markdown. Both navigation placeholders are
// filled in by the injector afterwards.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}{{if .ProjectName}} - {{.ProjectName}}{{end}}</title>
  <link rel="stylesheet" href="{{.BasePath}}{{.Stylesheet}}">
</head>
<body>
  <div data-nav-placeholder="mobile"></div>
  <div class="layout">
    <div data-nav-placeholder="sidebar"></div>
    <main class="content">
{{.Content}}
    </main>
  </div>
</body>
</html>
`

// stylesheetName is written to the output root when markdown pages exist.
const stylesheetName = "sitenav.css"

const cssContent = `body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; }
body.menu-open { overflow: hidden; }
.layout { display: flex; }
.sidebar { width: 260px; flex-shrink: 0; padding: 1rem; }
.content { flex: 1; padding: 2rem; max-width: 900px; }
.navigation-bar {
  display: none;
  top: 8px;
  border-radius: 8px;
  margin: 8px;
  backdrop-filter: saturate(180%) blur(20px);
  background-color: rgba(0, 0, 0, 0.8);
  color: #fff;
}
@media (max-width: 1024px) {
  .navigation-bar { display: flex; position: sticky; }
  .sidebar { display: none; }
  .sidebar.show { display: block; position: fixed; inset: 0; background: #fff; z-index: 10; }
}
`
