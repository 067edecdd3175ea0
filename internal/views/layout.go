package views

import (
	"net/url"
	"strconv"

	"yatube/internal/models"
	"yatube/internal/pagination"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const siteName = "Yatube"

func layout(title string, d *PageData, body ...Node) Node {
	return Doctype(HTML(
		Lang("ru"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | "+siteName)),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css")),
		),
		Body(
			header(d),
			Main(Class("container py-5"), Group(body)),
			Footer(Class("border-top text-center py-3"),
				P(Class("m-0"), Text("© "+siteName)),
			),
		),
	))
}

func header(d *PageData) Node {
	links := []Node{
		navLink("/", "Главная"),
	}
	if d.Viewer != nil {
		links = append(links,
			navLink("/create/", "Новая запись"),
			navLink(profileURL(d.Viewer.Username), d.Viewer.Username),
			Li(Class("nav-item"),
				Form(Method("post"), Action("/auth/logout/"),
					csrfField(d),
					Button(Type("submit"), Class("btn btn-link nav-link"), Text("Выйти")),
				),
			),
		)
	} else {
		links = append(links, navLink("/auth/login/", "Войти"))
	}

	return Header(
		Nav(Class("navbar navbar-light bg-light"),
			Div(Class("container"),
				A(Class("navbar-brand"), Href("/"), Text(siteName)),
				Ul(Class("nav"), Group(links)),
			),
		),
	)
}

func navLink(href, label string) Node {
	return Li(Class("nav-item"), A(Class("nav-link"), Href(href), Text(label)))
}

func csrfField(d *PageData) Node {
	if d.CSRFToken == "" {
		return nil
	}
	return Input(Type("hidden"), Name("csrf_token"), Value(d.CSRFToken))
}

func postCard(p models.Post, showGroupLink bool) Node {
	return Article(Class("mb-4"),
		Ul(Class("list-unstyled"),
			Li(Text("Автор: "), A(Href(profileURL(p.Author.Username)), Text(p.Author.Username))),
			Li(Text("Дата публикации: "+p.PubDate.Format("02.01.2006"))),
		),
		P(Text(p.Text)),
		A(Href(postURL(p.ID)), Text("подробная информация")),
		If(showGroupLink && p.Group != nil, groupLink(p.Group)),
		Hr(),
	)
}

func groupLink(g *models.Group) Node {
	if g == nil {
		return nil
	}
	return Div(A(Href(groupURL(g.Slug)), Text("все записи группы")))
}

func postList(page *pagination.Of[models.Post], showGroupLink bool) Node {
	if page == nil {
		return nil
	}
	return Group([]Node{
		Map(page.Items, func(p models.Post) Node { return postCard(p, showGroupLink) }),
		paginator(page.Page),
	})
}

// paginator renders the page navigation links.
func paginator(pg pagination.Page) Node {
	if pg.NumPages <= 1 {
		return nil
	}
	items := []Node{}
	if pg.HasPrevious {
		items = append(items,
			pageItem(1, "Первая", false),
			pageItem(pg.PreviousNumber, "Предыдущая", false),
		)
	}
	for _, n := range pg.Range() {
		items = append(items, pageItem(n, strconv.Itoa(n), n == pg.Number))
	}
	if pg.HasNext {
		items = append(items,
			pageItem(pg.NextNumber, "Следующая", false),
			pageItem(pg.NumPages, "Последняя", false),
		)
	}
	return Nav(Aria("label", "Пагинация"),
		Ul(Class("pagination justify-content-center"), Group(items)),
	)
}

func pageItem(number int, label string, active bool) Node {
	class := "page-item"
	if active {
		class += " active"
	}
	return Li(Class(class),
		A(Class("page-link"), Href("?page="+strconv.Itoa(number)), Text(label)),
	)
}

func profileURL(username string) string { return "/profile/" + url.PathEscape(username) + "/" }
func groupURL(slug string) string        { return "/group/" + slug + "/" }
func postURL(id uint) string             { return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/" }
func editURL(id uint) string             { return postURL(id) + "edit/" }
