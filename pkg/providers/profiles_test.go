package providers_test

import (
	"testing"

	"github.com/samvad-hq/headline-harvester/internal/domain"
	"github.com/samvad-hq/headline-harvester/pkg/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElTiempoProfile(t *testing.T) {
	t.Parallel()

	reg := providers.DefaultRegistry(nil)

	t.Run("reads a category-tagged article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article data-category="Política">
	<a class="c-articulo__titulo__txt" href="/noticia1.html">Noticia de prueba</a>
</article>
</body></html>`

		got := reg.Extract(html, "https://www.eltiempo.com", "eltiempo")

		require.Len(t, got, 1)
		assert.Equal(t, domain.Headline{
			Category: "Política",
			Title:    "Noticia de prueba",
			Link:     "https://www.eltiempo.com/noticia1.html",
		}, got[0])
	})

	t.Run("unions all passes without duplicates", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="c-main-section__cards__item">
	<span class="c-main-section__card__section">Deportes</span>
	<a class="c-main-section__card__title" href="https://www.eltiempo.com/politica/n1">Repetida</a>
</div>
<article data-category="Política">
	<a class="c-articulo__titulo__txt" href="/politica/n1">Noticia uno</a>
</article>
<div class="c-article-block__content">
	<span class="c-article-block__section">Economía</span>
	<a class="c-article-block__title-link" href="/economia/n2">Noticia dos</a>
</div>
<article data-category="">
	<a class="c-main-section__card__title" href="/vida/n4">Noticia cuatro</a>
</article>
<div class="c-main-section__cards__item">
	<a class="c-main-section__card__title" href="/cultura/n3">Noticia tres</a>
</div>
</body></html>`

		got := reg.Extract(html, "", "eltiempo")

		assert.Equal(t, []domain.Headline{
			{Category: "Política", Title: "Noticia uno", Link: "https://www.eltiempo.com/politica/n1"},
			{Category: domain.UncategorizedLabel, Title: "Noticia cuatro", Link: "https://www.eltiempo.com/vida/n4"},
			{Category: "Economía", Title: "Noticia dos", Link: "https://www.eltiempo.com/economia/n2"},
			{Category: domain.UncategorizedLabel, Title: "Noticia tres", Link: "https://www.eltiempo.com/cultura/n3"},
		}, got)
	})
}

func TestElEspectadorProfile(t *testing.T) {
	t.Parallel()

	reg := providers.DefaultRegistry(nil)

	t.Run("reads a card title", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="CardLayout-Container">
	<h2 class="Card-Title"><a href="/articulo-espectador.html">Título Espectador</a></h2>
</div>
</body></html>`

		got := reg.Extract(html, "https://www.elespectador.com", "elespectador")

		require.Len(t, got, 1)
		assert.Equal(t, domain.Headline{
			Category: domain.UncategorizedLabel,
			Title:    "Título Espectador",
			Link:     "https://www.elespectador.com/articulo-espectador.html",
		}, got[0])
	})

	t.Run("applies category rules in priority order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="Card" data-category="Datos">
	<div class="Card-SectionContainer"><h4 class="Card-Section"><a href="/politica">Política</a></h4></div>
	<h2 class="Card-Title"><a href="/politica/a1">Titular uno</a></h2>
</div>
<div class="Card" data-category="Datos">
	<h3><a href="/a2">Titular dos</a></h3>
</div>
<div class="Card" data-category="Datos">
	<span class="section-name">Mundo</span>
	<h2><a href="/a3">Titular tres</a></h2>
</div>
</body></html>`

		got := reg.Extract(html, "", "elespectador")

		assert.Equal(t, []domain.Headline{
			{Category: "Política", Title: "Titular uno", Link: "https://www.elespectador.com/politica/a1"},
			{Category: "Datos", Title: "Titular dos", Link: "https://www.elespectador.com/a2"},
			{Category: "Mundo", Title: "Titular tres", Link: "https://www.elespectador.com/a3"},
		}, got)
	})

	t.Run("scans links only for generic containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="Card"><a href="/a5">Un enlace suelto bastante largo</a></div>
<div class="card-body"><a href="/a6">Otro enlace suelto bastante largo</a></div>
</body></html>`

		got := reg.Extract(html, "", "elespectador")

		require.Len(t, got, 1)
		assert.Equal(t, "https://www.elespectador.com/a6", got[0].Link)
	})

	t.Run("orders by selector then document position", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="card-body"><h3><a href="/primero">Primero en el documento</a></h3></div>
<div class="Card"><h3><a href="/segundo">Segundo en el documento</a></h3></div>
<div class="Card card-body"><h3><a href="/tercero">Tercero en el documento</a></h3></div>
</body></html>`

		got := reg.Extract(html, "", "elespectador")

		links := make([]string, 0, len(got))
		for _, h := range got {
			links = append(links, h.Link)
		}
		assert.Equal(t, []string{
			"https://www.elespectador.com/segundo",
			"https://www.elespectador.com/tercero",
			"https://www.elespectador.com/primero",
		}, links)
	})
}

func TestPublimetroProfile(t *testing.T) {
	t.Parallel()

	reg := providers.DefaultRegistry(nil)

	got := reg.Extract(`<div class="Card"><h2><a href="/x">Titular</a></h2></div>`, "", "publimetro")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
