package server

import (
	"html/template"
	"net/http"
)

type pageData struct {
	Title      string
	Body       template.HTML
	Generation uint64
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div id="vlite-root" data-generation="{{.Generation}}">{{.Body}}</div>
<script>` + clientScript + `</script>
</body>
</html>
`))

// clientScript mirrors renders into #vlite-root and forwards events on
// elements marked with data-vl-on.
const clientScript = `
(function () {
  "use strict";
  var root = document.getElementById("vlite-root");
  var generation = Number(root.getAttribute("data-generation")) || 0;
  var ws;

  function build(node) {
    if (node.text !== undefined) {
      return document.createTextNode(node.text);
    }
    var el = document.createElement(node.tag);
    (node.attrs || []).forEach(function (a) { el.setAttribute(a[0], a[1]); });
    if (node.on && node.on.length) {
      el.setAttribute("data-vl-on", node.on.join(" "));
    }
    (node.children || []).forEach(function (c) { el.appendChild(build(c)); });
    return el;
  }

  function path(el) {
    var p = [];
    while (el && el !== root) {
      var i = 0;
      for (var s = el.previousElementSibling; s; s = s.previousElementSibling) {
        i++;
      }
      p.unshift(i);
      el = el.parentElement;
    }
    return el === root ? p : null;
  }

  function listens(el, type) {
    for (; el && el !== root; el = el.parentElement) {
      var on = el.getAttribute("data-vl-on");
      if (on && on.split(" ").indexOf(type) >= 0) {
        return true;
      }
    }
    return false;
  }

  function valueOf(el) {
    var from = el.getAttribute && el.getAttribute("data-value-from");
    if (from) {
      var src = document.getElementById(from);
      return src ? src.value : "";
    }
    return el.value !== undefined ? String(el.value) : "";
  }

  function forward(e) {
    var target = e.target;
    if (target.nodeType !== 1 || !listens(target, e.type)) {
      return;
    }
    var p = path(target);
    if (p === null || !ws || ws.readyState !== WebSocket.OPEN) {
      return;
    }
    if (e.type === "submit") {
      e.preventDefault();
    }
    ws.send(JSON.stringify({
      type: "event",
      path: p,
      event: e.type,
      value: valueOf(target),
      generation: generation
    }));
  }

  ["click", "input", "change", "submit", "keydown"].forEach(function (type) {
    root.addEventListener(type, forward);
  });

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (e) {
      var msg = JSON.parse(e.data);
      if (msg.type !== "render") {
        return;
      }
      generation = msg.generation;
      root.setAttribute("data-generation", String(generation));
      if (msg.tree) {
        root.replaceChildren(build(msg.tree));
      } else {
        root.innerHTML = msg.html;
      }
    };
    ws.onclose = function () {
      setTimeout(connect, 1000);
    };
  }
  connect();
})();
`

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	_, gen, html := s.snapshot()
	if gen == 0 {
		http.Error(w, ErrNotStarted.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{
		Title:      s.config.Title,
		Body:       template.HTML(html),
		Generation: gen,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}
