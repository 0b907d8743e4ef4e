package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrframe/web/components"
)

const (
	fieldClass  = "w-full rounded-lg border border-gray-600 bg-gray-800 px-3 py-2 text-sm text-white"
	labelClass  = "mb-2 block text-xs font-semibold uppercase tracking-wide text-white"
	buttonClass = "w-full rounded-lg bg-violet-600 px-4 py-2 font-semibold text-white hover:bg-violet-500"
)

// HomePage renders the code generator form with a frame picker.
func HomePage(options []components.StyleOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>QR Frame Generator</title></head>`)
		b.WriteString(`<body class="` + components.Class("min-h-screen bg-gray-900 p-6", "p-8") + `">`)
		b.WriteString(`<main class="mx-auto max-w-md space-y-4">`)
		b.WriteString(`<h1 class="text-2xl font-bold text-white">QR Frame Generator</h1>`)
		b.WriteString(`<form id="qr-form" class="space-y-4" enctype="multipart/form-data">`)

		b.WriteString(`<label class="` + labelClass + `" for="data">Text or URL</label>`)
		b.WriteString(`<textarea id="data" name="data" rows="3" class="` + components.Class(fieldClass, "resize-none") + `"></textarea>`)

		b.WriteString(`<label class="` + labelClass + `" for="image">Or upload an image</label>`)
		b.WriteString(`<input id="image" name="image" type="file" accept="image/*,.svg" class="` + components.Class(fieldClass, "px-2") + `">`)

		b.WriteString(`<label class="` + labelClass + `" for="frame">Choose Frame Style</label>`)
		b.WriteString(`<select id="frame" name="frame" class="` + fieldClass + `">`)
		for _, opt := range options {
			b.WriteString(`<option value="` + templ.EscapeString(opt.Value) + `">` + templ.EscapeString(opt.Label) + `</option>`)
		}
		b.WriteString(`</select>`)

		b.WriteString(`<button type="submit" class="` + buttonClass + `">Generate</button>`)
		b.WriteString(`</form>`)
		b.WriteString(`<p id="qr-error" class="` + components.Class("text-sm text-red-400", "hidden") + `"></p>`)
		b.WriteString(`<img id="qr-result" alt="Generated QR code" class="hidden mx-auto rounded-lg">`)
		b.WriteString(`</main>`)
		b.WriteString(`<script>` + formScript + `</script>`)
		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

const formScript = `
document.getElementById("qr-form").addEventListener("submit", async (e) => {
  e.preventDefault();
  const err = document.getElementById("qr-error");
  const img = document.getElementById("qr-result");
  err.classList.add("hidden");
  const res = await fetch("/generate", { method: "POST", body: new FormData(e.target) });
  const body = await res.json();
  if (!res.ok) {
    err.textContent = body.error;
    err.classList.remove("hidden");
    return;
  }
  img.src = body.qr_url;
  img.classList.remove("hidden");
});
`
