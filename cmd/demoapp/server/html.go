package server

import "html/template"

// The markup mirrors the element structure of buggy.justtestit.org closely
// enough for the suite's XPath selectors to resolve unchanged.

const layoutHTML = `{{define "top"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Buggy Cars Rating</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #f5f5f5; }
        .navbar { display: flex; align-items: center; gap: 12px; padding: 12px 24px; background: #2c3e50; color: white; }
        .navbar a { color: white; }
        .container { max-width: 960px; margin: 24px auto; background: white; padding: 24px; border-radius: 8px; }
        .card { border: 1px solid #ddd; border-radius: 4px; padding: 16px; margin: 8px; }
        .alert-success { color: #2e7d32; }
        .alert-danger, .label-warning { color: #c62828; }
        table { width: 100%; border-collapse: collapse; }
        td { border-top: 1px solid #eee; padding: 6px; }
    </style>
</head>
<body>
<nav class="navbar">
    <a class="navbar-brand" href="/">Buggy Rating</a>
    {{if .User}}
    <span class="nav-link">Hi, {{.User.FirstName}}</span>
    <a class="nav-link" href="/logout">Logout</a>
    {{else}}
    <form class="form-inline" method="post" action="/login">
        <input class="form-control" name="login" placeholder="Login" type="text">
        <input class="form-control" name="password" type="password">
        <button class="btn btn-success" type="submit">Login</button>
        <a class="btn" href="/register">Register</a>
    </form>
    {{if .LoginError}}<span class="label label-warning">Invalid username/password</span>{{end}}
    {{end}}
</nav>
<div class="container">
{{end}}
{{define "bottom"}}
</div>
</body>
</html>
{{end}}`

const homeHTML = `{{template "top" .}}
<div class="row">
    <div class="col">
        <div class="card">
            <h2 class="card-header">Popular Model</h2>
            <div class="card-block">
                <h3>{{.Popular.Make}} {{.Popular.Name}}({{.Popular.Votes}} votes)</h3>
                <a href="/model/{{.Popular.ID}}" title="{{.Popular.Name}}">View more</a>
            </div>
        </div>
    </div>
</div>
{{template "bottom" .}}`

const modelHTML = `{{template "top" .}}
<div class="row">
    <a href="/">Buggy Rating</a> / {{.Model.Make}}
</div>
<div class="row">
    <h4>{{.Model.Make}}</h4>
</div>
<div class="row">
    <h3>{{.Model.Name}}</h3>
    <p>{{.Model.Description}}</p>
</div>
<div class="row">
    <p>Votes: <strong id="votes">{{.Model.Votes}}</strong></p>
    {{if .User}}{{if .Voted}}
    <p class="card-text">Thank you for your vote!</p>
    {{else}}
    <div id="vote-area">
        <label for="comment">Your comment (optional)</label>
        <textarea class="form-control" id="comment" rows="3"></textarea>
        <button class="btn btn-success" id="vote" type="button">Vote!</button>
    </div>
    {{end}}{{else}}
    <p class="card-text">You need to be logged in to vote.</p>
    {{end}}
    <p id="vote-error" class="alert-danger"></p>
</div>
<table class="table">
    <tbody id="reviews">
    {{range .Model.Comments}}
        <tr><td>{{.Date.Format "Jan 2, 2006, 3:04:05 PM"}}</td><td>{{.Author}}</td><td>{{.Text}}</td></tr>
    {{end}}
    </tbody>
</table>
<script>
(function () {
    var button = document.getElementById("vote");
    if (!button) {
        return;
    }
    var delay = {{.ConfirmDelayMS}};
    button.addEventListener("click", function () {
        var comment = document.getElementById("comment").value;
        fetch("/api/model/" + {{.Model.ID}} + "/vote", {
            method: "POST",
            headers: {"Content-Type": "application/json"},
            body: JSON.stringify({comment: comment})
        }).then(function (res) {
            return res.json().then(function (data) { return {ok: res.ok, data: data}; });
        }).then(function (r) {
            setTimeout(function () {
                if (!r.ok) {
                    document.getElementById("vote-error").textContent = r.data.message;
                    return;
                }
                var area = document.getElementById("vote-area");
                var done = document.createElement("p");
                done.className = "card-text";
                done.textContent = "Thank you for your vote!";
                area.replaceWith(done);
                document.getElementById("votes").textContent = r.data.votes;
                if (r.data.comment) {
                    var row = document.createElement("tr");
                    [r.data.comment.date, r.data.comment.author, r.data.comment.text].forEach(function (v) {
                        var td = document.createElement("td");
                        td.textContent = v;
                        row.appendChild(td);
                    });
                    var reviews = document.getElementById("reviews");
                    reviews.insertBefore(row, reviews.firstChild);
                }
            }, delay);
        });
    });
})();
</script>
{{template "bottom" .}}`

const registerHTML = `{{template "top" .}}
<div class="row">
    <h2>Register with Buggy Cars Rating</h2>
</div>
<form method="post" action="/register">
    <div class="form-group">
        <label for="username">Login</label>
        <input class="form-control" id="username" name="username" type="text">
    </div>
    <div class="form-group">
        <label for="firstName">First Name</label>
        <input class="form-control" id="firstName" name="firstName" type="text">
    </div>
    <div class="form-group">
        <label for="lastName">Last Name</label>
        <input class="form-control" id="lastName" name="lastName" type="text">
    </div>
    <div class="form-group">
        <label for="password">Password</label>
        <input class="form-control" id="password" name="password" type="password">
    </div>
    <div class="form-group">
        <label for="confirmPassword">Confirm Password</label>
        <input class="form-control" id="confirmPassword" name="confirmPassword" type="password">
    </div>
    <button class="btn btn-default" type="submit">Register</button>
    <a class="btn" href="/" role="button">Cancel</a>
    {{if .Registered}}<div class="result alert alert-success">Registration is successful</div>{{end}}
    {{if .Error}}<div class="result alert alert-danger">{{.Error}}</div>{{end}}
</form>
{{template "bottom" .}}`

var pages = map[string]*template.Template{
	"home":     mustPage("home", homeHTML),
	"model":    mustPage("model", modelHTML),
	"register": mustPage("register", registerHTML),
}

func mustPage(name, body string) *template.Template {
	t := template.Must(template.New(name).Parse(layoutHTML))
	return template.Must(t.Parse(body))
}
