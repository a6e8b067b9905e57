//
// Copyright (c) 2026 The webwrap Authors
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package scaffold

import (
	"bytes"
	"html/template"

	"github.com/juju/errors"
)

const mainRsContent = `#![cfg_attr(not(debug_assertions), windows_subsystem = "windows")]

fn main() {
    tauri::Builder::default()
        .run(tauri::generate_context!())
        .expect("error while running tauri application");
}
`

const buildRsContent = `fn main() {
    tauri_build::build()
}
`

const buildUtilsContent = `// Build hook placeholder; the bundler expects this file to exist.
`

const desktopSchemaContent = `{
  "$schema": "https://json-schema.org/draft/2019-09/schema#",
  "type": "object",
  "required": ["identifier"],
  "properties": {
    "identifier": { "type": "string" }
  }
}
`

var indexHTMLTmpl = template.Must(template.New("index.html").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
</head>
<body>
    <div>Loading your app...</div>
</body>
</html>
`))

func renderIndexHTML(title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexHTMLTmpl.Execute(&buf, struct{ Title string }{title}); err != nil {
		return nil, errors.Annotatef(err, "rendering index.html")
	}
	return buf.Bytes(), nil
}
