package api

import (
	"net/http"
)

func (h *TryOnHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>Fashion Unlimited · Neural Try-On</title>
<script src="https://cdn.tailwindcss.com"></script>
<style>
body { font-family: Inter, system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
.preview-box{width:100%;height:220px;background:#0f172a;border:2px dashed #334155;display:flex;align-items:center;justify-content:center;overflow:hidden}
.preview-box img{max-width:100%;max-height:100%;object-fit:contain}
.loader{border:8px solid #1e293b;border-top:8px solid #3b82f6;border-radius:50%;width:56px;height:56px;animation:spin 1.2s linear infinite}
@keyframes spin{0%{transform:rotate(0)}100%{transform:rotate(360deg)}}
.tab-active{color:#fff;border-bottom:2px solid #3b82f6}
</style>
</head>
<body class="bg-slate-950 text-slate-100">
<div class="container mx-auto p-4 md:p-8 max-w-6xl">
<nav class="flex items-center justify-between mb-10">
<span class="font-bold text-xl tracking-tight">Fashion <span class="font-light text-slate-400">Unlimited</span></span>
<div class="flex gap-8" id="mode-toggle">
<button type="button" data-mode="MEN" class="mode-btn text-sm font-black tracking-widest py-1">MEN</button>
<button type="button" data-mode="WOMEN" class="mode-btn text-sm font-black tracking-widest py-1">WOMEN</button>
</div>
</nav>

<header class="text-center mb-10">
<h1 class="text-5xl md:text-7xl font-black tracking-tighter">Neural <span class="text-blue-500">Try-On.</span></h1>
<p class="text-slate-400 mt-4">Upload a portrait and the garments to fit. Realistic draping, real proportions.</p>
</header>

<main class="grid grid-cols-1 lg:grid-cols-2 gap-8">
<form id="tryon-form" class="bg-slate-900 p-6 rounded-2xl">
<div class="grid grid-cols-2 gap-4">
<div class="slot" data-slot="person">
<label class="block text-sm font-semibold mb-2 text-slate-300">Person</label>
<div class="preview-box rounded-lg mb-2"><span class="text-slate-500 text-sm">Preview</span></div>
<input type="file" name="person" accept="image/*" class="text-xs">
</div>
<div class="slot" data-slot="top">
<label class="block text-sm font-semibold mb-2 text-slate-300">Top</label>
<div class="preview-box rounded-lg mb-2"><span class="text-slate-500 text-sm">Preview</span></div>
<input type="file" name="top" accept="image/*" class="text-xs">
</div>
<div class="slot" data-slot="bottom">
<label class="block text-sm font-semibold mb-2 text-slate-300">Bottom</label>
<div class="preview-box rounded-lg mb-2"><span class="text-slate-500 text-sm">Preview</span></div>
<input type="file" name="bottom" accept="image/*" class="text-xs">
</div>
<div class="slot" data-slot="dress">
<label class="block text-sm font-semibold mb-2 text-slate-300">Dress</label>
<div class="preview-box rounded-lg mb-2"><span class="text-slate-500 text-sm">Preview</span></div>
<input type="file" name="dress" accept="image/*" class="text-xs">
</div>
</div>
<div class="flex gap-3 mt-6">
<button type="submit" id="run-btn" disabled class="flex-1 px-6 py-3 rounded-full bg-blue-600 font-black text-xs uppercase tracking-widest disabled:opacity-40 disabled:cursor-not-allowed">Run Fitting</button>
<button type="button" id="reset-btn" class="px-6 py-3 rounded-full bg-slate-800 font-bold text-xs uppercase tracking-widest">Reset</button>
</div>
<p id="error-message" class="hidden mt-4 text-sm text-red-400"></p>
</form>

<section class="bg-slate-900 p-6 rounded-2xl">
<div class="flex gap-6 border-b border-slate-800 mb-4 text-sm font-semibold text-slate-500">
<button type="button" data-tab="canvas" class="tab-btn pb-2 tab-active">Canvas</button>
<button type="button" data-tab="telemetry" class="tab-btn pb-2">Telemetry</button>
</div>
<div id="tab-canvas">
<div id="result-display" class="preview-box rounded-lg" style="height:480px"><span class="text-slate-500 text-sm">No result yet</span></div>
<a id="download-link" class="hidden mt-4 inline-block px-6 py-2 rounded-full bg-slate-800 text-xs font-bold uppercase tracking-widest" download="try-on">Download</a>
<p id="result-note" class="mt-3 text-xs text-slate-400"></p>
</div>
<div id="tab-telemetry" class="hidden">
<pre id="telemetry" class="text-xs text-emerald-300 whitespace-pre-wrap">{}</pre>
</div>
</section>
</main>
</div>

<script>
const form = document.getElementById('tryon-form');
const runBtn = document.getElementById('run-btn');
const resetBtn = document.getElementById('reset-btn');
const errorMessage = document.getElementById('error-message');
const resultDisplay = document.getElementById('result-display');
const downloadLink = document.getElementById('download-link');
const resultNote = document.getElementById('result-note');
const telemetry = document.getElementById('telemetry');
const slots = Array.from(document.querySelectorAll('.slot'));

let mode = 'MEN';
let modeSlots = { MEN: ['top', 'bottom'], WOMEN: ['top', 'bottom', 'dress'] };

fetch('/api/modes').then(r => r.json()).then(body => {
    modeSlots = {};
    body.modes.forEach(m => { modeSlots[m.mode] = m.slots; });
    applyMode(mode);
}).catch(() => applyMode(mode));

function input(slot) {
    return document.querySelector('input[name="' + slot + '"]');
}

function clearSlot(el) {
    input(el.dataset.slot).value = '';
    el.querySelector('.preview-box').innerHTML = '<span class="text-slate-500 text-sm">Preview</span>';
}

function applyMode(next) {
    mode = next;
    document.querySelectorAll('.mode-btn').forEach(btn => {
        btn.classList.toggle('text-white', btn.dataset.mode === mode);
        btn.classList.toggle('text-slate-500', btn.dataset.mode !== mode);
    });
    slots.forEach(el => {
        const slot = el.dataset.slot;
        const visible = slot === 'person' || (modeSlots[mode] || []).includes(slot);
        if (!visible) clearSlot(el);
        el.classList.toggle('hidden', !visible);
    });
    updateRunButton();
}

function updateRunButton() {
    const hasPerson = input('person').files.length > 0;
    const hasGarment = (modeSlots[mode] || []).some(slot => input(slot).files.length > 0);
    runBtn.disabled = !(hasPerson && hasGarment);
}

slots.forEach(el => {
    const field = input(el.dataset.slot);
    field.addEventListener('change', () => {
        const file = field.files[0];
        const box = el.querySelector('.preview-box');
        if (file) {
            const reader = new FileReader();
            reader.onload = e => { box.innerHTML = '<img src="' + e.target.result + '" alt="">'; };
            reader.readAsDataURL(file);
        } else {
            clearSlot(el);
        }
        updateRunButton();
    });
});

document.querySelectorAll('.mode-btn').forEach(btn => {
    btn.addEventListener('click', () => applyMode(btn.dataset.mode));
});

document.querySelectorAll('.tab-btn').forEach(btn => {
    btn.addEventListener('click', () => {
        document.querySelectorAll('.tab-btn').forEach(b => b.classList.toggle('tab-active', b === btn));
        document.getElementById('tab-canvas').classList.toggle('hidden', btn.dataset.tab !== 'canvas');
        document.getElementById('tab-telemetry').classList.toggle('hidden', btn.dataset.tab !== 'telemetry');
    });
});

function resetResult() {
    resultDisplay.innerHTML = '<span class="text-slate-500 text-sm">No result yet</span>';
    downloadLink.classList.add('hidden');
    downloadLink.removeAttribute('href');
    resultNote.textContent = '';
    telemetry.textContent = '{}';
    errorMessage.classList.add('hidden');
}

resetBtn.addEventListener('click', () => {
    slots.forEach(clearSlot);
    resetResult();
    updateRunButton();
});

form.addEventListener('submit', async event => {
    event.preventDefault();
    if (runBtn.disabled) return;

    const formData = new FormData();
    formData.append('mode', mode);
    formData.append('person', input('person').files[0]);
    (modeSlots[mode] || []).forEach(slot => {
        const file = input(slot).files[0];
        if (file) formData.append(slot, file);
    });

    resetResult();
    runBtn.disabled = true;
    runBtn.textContent = 'Fitting...';
    resultDisplay.innerHTML = '<div class="loader"></div>';

    try {
        const res = await fetch('/tryon', { method: 'POST', body: formData });
        const body = await res.json();
        if (!res.ok || !body.success) {
            throw new Error(body.error || ('request failed with status ' + res.status));
        }
        resultDisplay.innerHTML = '<img src="' + body.image + '" alt="try-on result">';
        downloadLink.href = body.image;
        downloadLink.download = body.requestId + '.' + body.mimeType.split('/')[1];
        downloadLink.classList.remove('hidden');
        resultNote.textContent = body.note || '';
        telemetry.textContent = JSON.stringify(body.analysis, null, 2);
    } catch (err) {
        resultDisplay.innerHTML = '<span class="text-slate-500 text-sm">No result</span>';
        errorMessage.textContent = err.message;
        errorMessage.classList.remove('hidden');
    } finally {
        runBtn.textContent = 'Run Fitting';
        updateRunButton();
    }
});

applyMode(mode);
</script>
</body>
</html>`
