package web

// pageTemplates holds the dashboard markup. It is deliberately plain HTML,
// there is no client side code.
const pageTemplates = `
{{define "head"}}
<!DOCTYPE html>
<html>
<head><title>minirel</title></head>
<body>
<p>
<a href="/">home</a> |
<a href="/users">users</a> |
<a href="/orders">orders</a> |
<a href="/orders/join">orders by user</a>
</p>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "result"}}
<table border="1" cellpadding="4">
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
{{end}}

{{define "index"}}
{{template "head"}}
<h1>Tables</h1>
<table border="1" cellpadding="4">
<tr><th>table</th><th>rows</th></tr>
{{range .}}<tr><td>{{.Name}}</td><td>{{.Rows}}</td></tr>{{end}}
</table>
{{template "foot"}}
{{end}}

{{define "users"}}
{{template "head"}}
<h1>Users</h1>
{{template "result" .}}
<h2>Add user</h2>
<form method="post" action="/users/add">
email <input name="email">
name <input name="name">
age <input name="age">
<button type="submit">add</button>
</form>
<h2>Edit user</h2>
<form method="post" action="/users/edit">
id <input name="id">
email <input name="email">
name <input name="name">
age <input name="age">
<button type="submit">save</button>
</form>
<h2>Delete user</h2>
<form method="post" action="/users/delete">
id <input name="id">
<button type="submit">delete</button>
</form>
{{template "foot"}}
{{end}}

{{define "orders"}}
{{template "head"}}
<h1>Orders</h1>
{{template "result" .}}
<h2>Add order</h2>
<form method="post" action="/orders/add">
user_id <input name="user_id">
product <input name="product">
amount <input name="amount">
<button type="submit">add</button>
</form>
<h2>Edit order</h2>
<form method="post" action="/orders/edit">
id <input name="id">
user_id <input name="user_id">
product <input name="product">
amount <input name="amount">
<button type="submit">save</button>
</form>
<h2>Delete order</h2>
<form method="post" action="/orders/delete">
id <input name="id">
<button type="submit">delete</button>
</form>
{{template "foot"}}
{{end}}

{{define "join"}}
{{template "head"}}
<h1>Orders by user</h1>
{{template "result" .}}
{{template "foot"}}
{{end}}
`
