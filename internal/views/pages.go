package views

import (
	"strconv"

	"yatube/internal/forms"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func indexPage(d *PageData) Node {
	return layout("Последние обновления на сайте", d,
		H1(Text("Последние обновления на сайте")),
		postList(d.Page, true),
	)
}

func groupPage(d *PageData) Node {
	title, description := "", ""
	if d.Group != nil {
		title, description = d.Group.Title, d.Group.Description
	}
	return layout("Записи сообщества "+title, d,
		H1(Text(title)),
		P(Text(description)),
		postList(d.Page, false),
	)
}

func profilePage(d *PageData) Node {
	username := ""
	if d.Author != nil {
		username = d.Author.Username
	}
	return layout("Профайл пользователя "+username, d,
		H1(Text("Все посты пользователя "+username)),
		H3(Text("Всего постов: "+strconv.FormatInt(d.Count, 10))),
		postList(d.Page, true),
	)
}

func postDetailPage(d *PageData) Node {
	p := d.Post
	if p == nil {
		return notFoundPage(d)
	}
	canEdit := d.Viewer != nil && d.Viewer.ID == p.AuthorID

	return layout("Пост "+p.String(), d,
		Div(Class("row"),
			Aside(Class("col-12 col-md-3"),
				Ul(Class("list-group list-group-flush"),
					Li(Class("list-group-item"), Text("Дата публикации: "+p.PubDate.Format("02.01.2006"))),
					If(p.Group != nil, Li(Class("list-group-item"),
						Text("Группа: "), groupTitle(d), groupLink(p.Group),
					)),
					Li(Class("list-group-item"), Text("Автор: "+p.Author.Username)),
					Li(Class("list-group-item"), Text("Всего постов автора: "), Span(Text(strconv.FormatInt(d.Count, 10)))),
					Li(Class("list-group-item"), A(Href(profileURL(p.Author.Username)), Text("все посты пользователя"))),
				),
			),
			Article(Class("col-12 col-md-9"),
				P(Text(p.Text)),
				If(canEdit, A(Class("btn btn-primary"), Href(editURL(p.ID)), Text("редактировать запись"))),
			),
		),
	)
}

func groupTitle(d *PageData) Node {
	if d.Post == nil || d.Post.Group == nil {
		return nil
	}
	return Text(d.Post.Group.Title)
}

func postFormPage(d *PageData) Node {
	f := d.Form
	if f == nil {
		f = forms.NewPostForm()
	}

	heading, submit, action := "Новый пост", "Добавить", "/create/"
	if d.IsEdit {
		heading, submit = "Редактировать пост", "Сохранить"
		if d.Post != nil {
			action = editURL(d.Post.ID)
		}
	}

	options := []Node{Option(Value(""), Text("---------"))}
	for _, g := range d.Groups {
		options = append(options, Option(
			Value(strconv.FormatUint(uint64(g.ID), 10)),
			If(f.SelectedGroup(g.ID), Selected()),
			Text(g.Title),
		))
	}

	return layout(heading, d,
		Div(Class("card"),
			Div(Class("card-header"), Text(heading)),
			Div(Class("card-body"),
				Form(Method("post"), Action(action),
					csrfField(d),
					Div(Class("form-group mb-3"),
						Label(For("id_text"), Text(forms.TextLabel), Span(Class("required text-danger"), Text("*"))),
						Textarea(ID("id_text"), Name(forms.FieldText), Class("form-control"), Rows("10"), Text(f.Text)),
						Small(Class("form-text text-muted"), Text(forms.TextHelp)),
						fieldErrors(f.FieldErrors(forms.FieldText)),
					),
					Div(Class("form-group mb-3"),
						Label(For("id_group"), Text(forms.GroupLabel)),
						Select(ID("id_group"), Name(forms.FieldGroup), Class("form-control"), Group(options)),
						Small(Class("form-text text-muted"), Text(forms.GroupHelp)),
						fieldErrors(f.FieldErrors(forms.FieldGroup)),
					),
					Button(Type("submit"), Class("btn btn-primary"), Text(submit)),
				),
			),
		),
	)
}

func fieldErrors(msgs []string) Node {
	if len(msgs) == 0 {
		return nil
	}
	return Ul(Class("errorlist text-danger"),
		Map(msgs, func(m string) Node { return Li(Text(m)) }),
	)
}

func loginPage(d *PageData) Node {
	return layout("Войти", d,
		Div(Class("card"),
			Div(Class("card-header"), Text("Войти на сайт")),
			Div(Class("card-body"),
				If(d.LoginError != "", P(Class("alert alert-danger"), Text(d.LoginError))),
				Form(Method("post"), Action("/auth/login/"),
					csrfField(d),
					Input(Type("hidden"), Name("next"), Value(d.Next)),
					Div(Class("form-group mb-3"),
						Label(For("id_username"), Text("Имя пользователя")),
						Input(ID("id_username"), Type("text"), Name("username"), Class("form-control"), Value(d.Username), Required()),
					),
					Div(Class("form-group mb-3"),
						Label(For("id_password"), Text("Пароль")),
						Input(ID("id_password"), Type("password"), Name("password"), Class("form-control"), Required()),
					),
					Button(Type("submit"), Class("btn btn-primary"), Text("Войти")),
				),
			),
		),
	)
}

func notFoundPage(d *PageData) Node {
	return layout("Страница не найдена", d,
		H1(Text("Ошибка 404")),
		P(Text("Страница "+d.Path+" не найдена")),
		A(Href("/"), Text("Идите на главную")),
	)
}

func errorPage(d *PageData) Node {
	return layout("Ошибка сервера", d,
		H1(Text("Ошибка 500")),
		P(Text("Что-то пошло не так. Попробуйте обновить страницу позже.")),
	)
}
